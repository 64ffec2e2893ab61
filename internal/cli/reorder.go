package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/store"
)

// ReorderCommand handles the reorder command
type ReorderCommand struct {
	store *store.Store
}

// NewReorderCommand creates a new reorder command
func NewReorderCommand(st *store.Store) *cobra.Command {
	cmd := &ReorderCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Reorder the project list",
		Long:  `Assign list positions from the given id order. Projects not named keep their current position.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  cmd.Run,
	}

	return cobraCmd
}

// Run executes the reorder command
func (c *ReorderCommand) Run(cmd *cobra.Command, args []string) error {
	if err := c.store.Reorder(args); err != nil {
		return err
	}

	for _, p := range c.store.List() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderProjectLine(p))
	}
	return nil
}
