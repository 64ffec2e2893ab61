package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/launcher"
	"github.com/devdeck/devdeck/internal/models"
	"github.com/devdeck/devdeck/internal/store"
)

// OpenCommand handles the open command
type OpenCommand struct {
	store    *store.Store
	launcher *launcher.Launcher
	with     string
}

// NewOpenCommand creates a new open command
func NewOpenCommand(st *store.Store, l *launcher.Launcher) *cobra.Command {
	cmd := &OpenCommand{store: st, launcher: l}

	cobraCmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a project",
		Long:  `Open a project in the editor, a terminal, the file browser, or a configured custom launcher.`,
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.with, "with", "w", string(models.LaunchEditor),
		"launch type: editor, terminal, fileBrowser or a custom launcher id")

	return cobraCmd
}

// Run executes the open command
func (c *OpenCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := c.store.Get(args[0])
	if err != nil {
		return err
	}

	if err := c.launcher.Launch(project.Path, models.LaunchType(c.with)); err != nil {
		return fmt.Errorf("failed to open %s: %w", project.Name, err)
	}

	if err := c.store.BumpRecency(project.ID); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record recency: %v\n", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", project.Name)
	return nil
}
