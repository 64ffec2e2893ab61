package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/models"
	"github.com/devdeck/devdeck/internal/store"
)

// DocCommand handles the doc command group
type DocCommand struct {
	store *store.Store
}

// NewDocCommand creates a new doc command
func NewDocCommand(st *store.Store) *cobra.Command {
	cmd := &DocCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage custom project documents",
		Long:  `Attach document paths to a project. Custom documents survive re-scans.`,
	}

	cobraCmd.AddCommand(&cobra.Command{
		Use:   "add <id> <name> <path>",
		Short: "Attach a document to a project",
		Args:  cobra.ExactArgs(3),
		RunE:  cmd.RunAdd,
	})
	cobraCmd.AddCommand(&cobra.Command{
		Use:   "remove <id> <name>",
		Short: "Remove a document from a project",
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.RunRemove,
	})

	return cobraCmd
}

// RunAdd executes doc add
func (c *DocCommand) RunAdd(cmd *cobra.Command, args []string) error {
	project, err := c.store.AddDoc(args[0], models.CustomDoc{Name: args[1], Path: args[2]})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added doc %s to %s\n", args[1], project.Name)
	return nil
}

// RunRemove executes doc remove
func (c *DocCommand) RunRemove(cmd *cobra.Command, args []string) error {
	project, err := c.store.RemoveDoc(args[0], args[1])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed doc %s from %s\n", args[1], project.Name)
	return nil
}
