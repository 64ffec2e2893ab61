package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/models"
	"github.com/devdeck/devdeck/internal/store"
)

// LinkCommand handles the link command group
type LinkCommand struct {
	store *store.Store
}

// NewLinkCommand creates a new link command
func NewLinkCommand(st *store.Store) *cobra.Command {
	cmd := &LinkCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "link",
		Short: "Manage custom project links",
		Long:  `Attach URLs to a project. Custom links survive re-scans.`,
	}

	cobraCmd.AddCommand(&cobra.Command{
		Use:   "add <id> <name> <url>",
		Short: "Attach a link to a project",
		Args:  cobra.ExactArgs(3),
		RunE:  cmd.RunAdd,
	})
	cobraCmd.AddCommand(&cobra.Command{
		Use:   "remove <id> <name>",
		Short: "Remove a link from a project",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.RunRemove,
	})

	return cobraCmd
}

// RunAdd executes link add
func (c *LinkCommand) RunAdd(cmd *cobra.Command, args []string) error {
	project, err := c.store.AddLink(args[0], models.CustomLink{Name: args[1], URL: args[2]})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added link %s to %s\n", args[1], project.Name)
	return nil
}

// RunRemove executes link remove
func (c *LinkCommand) RunRemove(cmd *cobra.Command, args []string) error {
	project, err := c.store.RemoveLink(args[0], args[1])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed link %s from %s\n", args[1], project.Name)
	return nil
}
