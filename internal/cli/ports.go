package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/store"
)

// PortsCommand handles the ports command
type PortsCommand struct {
	store    *store.Store
	backend  int
	frontend int
}

// NewPortsCommand creates a new ports command
func NewPortsCommand(st *store.Store) *cobra.Command {
	cmd := &PortsCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "ports <id>",
		Short: "Override detected ports",
		Long:  `Override the detected backend and frontend ports for a project. An override of 0 falls back to detection.`,
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().IntVar(&cmd.backend, "backend", 0, "backend port override (0 clears)")
	cobraCmd.Flags().IntVar(&cmd.frontend, "frontend", 0, "frontend port override (0 clears)")

	return cobraCmd
}

// Run executes the ports command
func (c *PortsCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := c.store.SetPortOverrides(args[0], c.backend, c.frontend)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: backend %d, frontend %d\n",
		project.Name, project.EffectiveBackendPort(), project.EffectiveFrontendPort())
	return nil
}
