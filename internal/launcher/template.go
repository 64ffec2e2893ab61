package launcher

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// CustomCommand is a user-configured launch type: an arbitrary external
// command template bound to the project path.
type CustomCommand struct {
	// ID is the launch-type token this command answers to
	ID string

	// Name is the display name shown in the palette
	Name string

	// Template is the command line template. Available fields:
	// {{.Path}} (project path), {{.Name}} (directory name) and
	// {{.WSLPath}} (path translated to the WSL convention).
	Template string

	// Hotkey is the palette sub-hotkey bound to this command (optional)
	Hotkey string
}

// commandData is the template context for a custom command.
type commandData struct {
	Path    string
	Name    string
	WSLPath string
}

// renderCommand expands a command template into argv. Fields are split on
// whitespace after rendering; paths with spaces should be quoted in the
// template via sprig's quote/squote helpers.
func renderCommand(tmpl string, data commandData) ([]string, error) {
	t, err := template.New("command").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render command template: %w", err)
	}

	argv := splitCommand(buf.String())
	if len(argv) == 0 {
		return nil, fmt.Errorf("command template rendered to an empty command")
	}
	return argv, nil
}

// splitCommand splits a rendered command line on whitespace, honoring
// single and double quotes.
func splitCommand(line string) []string {
	var (
		argv    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == ' ' || r == '\t' || r == '\n':
			if inArg {
				argv = append(argv, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		argv = append(argv, current.String())
	}
	return argv
}
