package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/store"
)

// ShowCommand handles the show command
type ShowCommand struct {
	store *store.Store
}

// NewShowCommand creates a new show command
func NewShowCommand(st *store.Store) *cobra.Command {
	cmd := &ShowCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project in detail",
		Long:  `Show a project's full record: tags, ports, documentation, and custom links.`,
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	return cobraCmd
}

// Run executes the show command
func (c *ShowCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := c.store.Get(args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderProjectLine(project))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderProject(project))
	return nil
}
