package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/models"
	"github.com/devdeck/devdeck/internal/store"
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true)
	idStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tagsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

// ListCommand handles the list command
type ListCommand struct {
	store *store.Store
}

// NewListCommand creates a new list command
func NewListCommand(st *store.Store) *cobra.Command {
	cmd := &ListCommand{store: st}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed projects",
		Long:  `List all indexed projects in their configured order.`,
		RunE:  cmd.Run,
	}

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	projects := c.store.List()
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No projects indexed. Run `devdeck add <path>` to get started.")
		return nil
	}

	for _, p := range projects {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderProjectLine(p))
	}
	return nil
}

// renderProjectLine formats one list row: name, short tag summary and id.
func renderProjectLine(p *models.Project) string {
	line := nameStyle.Render(p.Name)
	if len(p.Tags) > 0 {
		shown := p.Tags
		suffix := ""
		if len(shown) > 3 {
			suffix = fmt.Sprintf(" +%d", len(shown)-3)
			shown = shown[:3]
		}
		line += "  " + tagsStyle.Render(strings.Join(shown, " ")+suffix)
	}
	line += "  " + idStyle.Render(p.ID)
	return line
}

// renderProject formats a full project record for detail output.
func renderProject(p *models.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  path: %s\n", p.Path)
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "  tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if port := p.EffectiveBackendPort(); port > 0 {
		fmt.Fprintf(&b, "  backend: http://localhost:%d\n", port)
	}
	if p.FrontendURL != "" {
		fmt.Fprintf(&b, "  frontend: %s\n", p.FrontendURL)
	}
	for _, doc := range p.Docs {
		fmt.Fprintf(&b, "  doc: %s (%s)\n", doc.Name, doc.Path)
	}
	for _, link := range p.CustomLinks {
		fmt.Fprintf(&b, "  link: %s (%s)\n", link.Name, link.URL)
	}
	for _, doc := range p.CustomDocs {
		fmt.Fprintf(&b, "  doc: %s (%s)\n", doc.Name, doc.Path)
	}

	return strings.TrimRight(b.String(), "\n")
}
