package models

// LaunchType identifies how a project should be opened.
//
// The three builtin types map to OS tools; anything else is looked up in the
// configured custom launchers.
type LaunchType string

const (
	LaunchEditor      LaunchType = "editor"
	LaunchTerminal    LaunchType = "terminal"
	LaunchFileBrowser LaunchType = "fileBrowser"
)

// IsBuiltin reports whether the launch type is one of the builtin tools.
func (t LaunchType) IsBuiltin() bool {
	switch t {
	case LaunchEditor, LaunchTerminal, LaunchFileBrowser:
		return true
	default:
		return false
	}
}

// String returns the string representation of the LaunchType.
func (t LaunchType) String() string {
	return string(t)
}
