package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/store"
)

// AddCommand handles the add command
type AddCommand struct {
	store *store.Store
}

// NewAddCommand creates a new add command
func NewAddCommand(st *store.Store) *cobra.Command {
	cmd := &AddCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Index a project directory",
		Long:  `Index a project directory: scan it for tags, docs and ports and append it to the collection.`,
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	return cobraCmd
}

// Run executes the add command
func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := c.store.Add(args[0])
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePath) {
			return fmt.Errorf("already indexed: %s", args[0])
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", project.Name, project.ID)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderProject(project))

	return nil
}
