package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/store"
)

// RemoveCommand handles the remove command
type RemoveCommand struct {
	store *store.Store
	yes   bool
}

// NewRemoveCommand creates a new remove command
func NewRemoveCommand(st *store.Store) *cobra.Command {
	cmd := &RemoveCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a project from the index",
		Long:  `Remove a project from the index. The directory on disk is untouched.`,
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().BoolVarP(&cmd.yes, "yes", "y", false, "skip the confirmation prompt")

	return cobraCmd
}

// Run executes the remove command
func (c *RemoveCommand) Run(cmd *cobra.Command, args []string) error {
	project, err := c.store.Get(args[0])
	if err != nil {
		return err
	}

	if !c.yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %s from the index?", project.Name)).
				Description(project.Path).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("failed to confirm: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	if err := c.store.Delete(project.ID); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", project.Name)
	return nil
}
