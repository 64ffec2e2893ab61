package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devdeck/devdeck/internal/models"
)

// Action is one launch choice offered by the palette, bound to a sub-hotkey.
type Action struct {
	ID     string
	Name   string
	Hotkey string
}

// maxVisible caps how many matches the palette renders.
const maxVisible = 8

// maxTagsShown bounds the tag prefix rendered per project; the full set
// stays on the record.
const maxTagsShown = 3

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

// Model is the palette UI: a text input filtering the project list, ranked
// most-recently-opened first. Selection state survives program exit so the
// worker can act on it.
type Model struct {
	input    textinput.Model
	projects []*models.Project
	actions  []Action

	filtered []*models.Project
	cursor   int

	selected *models.Project
	action   string
}

// NewModel creates a palette model over the given projects (already ranked)
// and launch actions. The first action is the default for enter.
func NewModel(projects []*models.Project, actions []Action) Model {
	input := textinput.New()
	input.Placeholder = "type to filter projects"
	input.Prompt = "› "
	input.Focus()

	m := Model{
		input:    input,
		projects: projects,
		actions:  actions,
	}
	m.refilter()
	return m
}

// SetProjects replaces the project list, keeping the surface itself alive.
func (m *Model) SetProjects(projects []*models.Project) {
	m.projects = projects
	m.selected = nil
	m.action = ""
	m.cursor = 0
	m.input.SetValue("")
	m.refilter()
}

// Selected returns the chosen project and action id after the program
// finishes, or nil when the palette was dismissed.
func (m *Model) Selected() (*models.Project, string) {
	return m.selected, m.action
}

// refilter recomputes the visible projects from the current query using
// fuzzy matching over name and tags.
func (m *Model) refilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.filtered = m.projects
	} else {
		targets := make([]string, len(m.projects))
		for i, p := range m.projects {
			targets[i] = p.Name + " " + strings.Join(p.Tags, " ")
		}

		ranks := list.DefaultFilter(query, targets)
		m.filtered = make([]*models.Project, 0, len(ranks))
		for _, rank := range ranks {
			m.filtered = append(m.filtered, m.projects[rank.Index])
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.selected = nil
		m.action = ""
		return m, tea.Quit

	case "up", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if len(m.actions) > 0 {
			return m.choose(m.actions[0].ID)
		}
		return m, tea.Quit
	}

	for _, action := range m.actions {
		if action.Hotkey != "" && keyMsg.String() == action.Hotkey {
			return m.choose(action.ID)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m Model) choose(actionID string) (tea.Model, tea.Cmd) {
	if m.cursor < len(m.filtered) {
		m.selected = m.filtered[m.cursor]
		m.action = actionID
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Projects"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("no matches"))
		b.WriteString("\n")
	}

	for i, p := range m.filtered {
		if i >= maxVisible {
			b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(m.filtered)-maxVisible)))
			b.WriteString("\n")
			break
		}

		line := p.Name
		if tags := renderTags(p.Tags); tags != "" {
			line += "  " + tagStyle.Render(tags)
		}

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.actions)+1)
	for _, action := range m.actions {
		if action.Hotkey != "" {
			parts = append(parts, fmt.Sprintf("%s %s", action.Hotkey, action.Name))
		}
	}
	parts = append(parts, "esc close")
	return strings.Join(parts, " · ")
}

func renderTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	shown := tags
	if len(shown) > maxTagsShown {
		return strings.Join(shown[:maxTagsShown], " ") + fmt.Sprintf(" +%d", len(tags)-maxTagsShown)
	}
	return strings.Join(shown, " ")
}
