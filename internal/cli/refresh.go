package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/store"
)

// RefreshCommand handles the refresh command
type RefreshCommand struct {
	store *store.Store
	all   bool
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(st *store.Store) *cobra.Command {
	cmd := &RefreshCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "refresh [id]",
		Short: "Re-scan indexed projects",
		Long:  `Re-scan a project and update its detected tags, docs and ports. Custom links, custom docs and port overrides are kept.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.all, "all", false, "refresh every indexed project")

	return cobraCmd
}

// Run executes the refresh command
func (c *RefreshCommand) Run(cmd *cobra.Command, args []string) error {
	if c.all {
		for _, p := range c.store.List() {
			if _, err := c.store.Refresh(p.ID); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
				continue
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %s\n", p.Name)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("provide a project id or --all")
	}

	project, err := c.store.Refresh(args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %s\n", project.Name)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderProject(project))
	return nil
}
