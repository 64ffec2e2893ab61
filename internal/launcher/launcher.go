package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/devdeck/devdeck/internal/filesystem"
	"github.com/devdeck/devdeck/internal/models"
)

// Launcher opens project paths in external tools. Tool locations are
// resolved once per process lifetime and cached, keeping the invocation to
// spawn hot path free of lookups.
type Launcher struct {
	fs      filesystem.FileSystem
	spawner Spawner

	goos        string
	getenv      func(string) string
	fileManager string
	custom      map[string]CustomCommand

	editorOnce sync.Once
	editorPath string
	editorErr  error

	terminalOnce sync.Once
	terminalName string
	terminalErr  error
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithGOOS overrides the target OS (tests).
func WithGOOS(goos string) Option {
	return func(l *Launcher) { l.goos = goos }
}

// WithGetenv overrides environment lookup (tests).
func WithGetenv(getenv func(string) string) Option {
	return func(l *Launcher) { l.getenv = getenv }
}

// WithFileManager sets a file-manager override; empty means OS default.
func WithFileManager(tool string) Option {
	return func(l *Launcher) { l.fileManager = tool }
}

// WithCustomCommands registers user-configured launch types.
func WithCustomCommands(commands []CustomCommand) Option {
	return func(l *Launcher) {
		for _, cmd := range commands {
			l.custom[cmd.ID] = cmd
		}
	}
}

// New creates a new Launcher
func New(fs filesystem.FileSystem, spawner Spawner, options ...Option) *Launcher {
	l := &Launcher{
		fs:      fs,
		spawner: spawner,
		goos:    runtime.GOOS,
		getenv:  os.Getenv,
		custom:  make(map[string]CustomCommand),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Launch opens path with the tool identified by launchType. Failures are
// reported synchronously and typed by stage: ToolNotFoundError,
// PathNotFoundError or LaunchFailedError.
func (l *Launcher) Launch(path string, launchType models.LaunchType) error {
	info, err := l.fs.Stat(path)
	if err != nil {
		return &PathNotFoundError{Path: path}
	}

	switch launchType {
	case models.LaunchEditor:
		return l.launchEditor(path, info.IsDir())
	case models.LaunchTerminal:
		return l.launchTerminal(path)
	case models.LaunchFileBrowser:
		return l.launchFileBrowser(path)
	default:
		if cmd, ok := l.custom[string(launchType)]; ok {
			return l.launchCustom(cmd, path)
		}
		return fmt.Errorf("%w: %s", ErrUnknownLaunchType, launchType)
	}
}

// launchEditor opens the path in the editor. When the directory contains a
// workspace descriptor, the descriptor is opened instead of the bare
// directory so editor-specific settings apply.
func (l *Launcher) launchEditor(path string, isDir bool) error {
	editor, err := l.resolveEditor()
	if err != nil {
		return err
	}

	target := path
	if isDir {
		if descriptor := l.findWorkspaceDescriptor(path); descriptor != "" {
			target = descriptor
		}
	}

	if err := l.spawner.Start(editor, target); err != nil {
		return &LaunchFailedError{Tool: editor, Err: err}
	}
	return nil
}

func (l *Launcher) findWorkspaceDescriptor(dir string) string {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".code-workspace") {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

// resolveEditor locates the editor executable once; later launches reuse
// the cached result, including a cached failure.
func (l *Launcher) resolveEditor() (string, error) {
	l.editorOnce.Do(func() {
		if path, err := l.spawner.LookPath("code"); err == nil {
			l.editorPath = path
			return
		}
		for _, candidate := range l.editorCandidates() {
			if l.fs.Exists(candidate) {
				l.editorPath = candidate
				return
			}
		}
		l.editorErr = &ToolNotFoundError{Tool: "code"}
	})
	return l.editorPath, l.editorErr
}

func (l *Launcher) editorCandidates() []string {
	switch l.goos {
	case "windows":
		return []string{
			filepath.Join(l.getenv("LOCALAPPDATA"), "Programs", "Microsoft VS Code", "bin", "code.cmd"),
			filepath.Join(l.getenv("PROGRAMFILES"), "Microsoft VS Code", "bin", "code.cmd"),
			filepath.Join(l.getenv("PROGRAMFILES(X86)"), "Microsoft VS Code", "bin", "code.cmd"),
		}
	case "darwin":
		return []string{
			"/usr/local/bin/code",
			"/opt/homebrew/bin/code",
			"/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code",
		}
	default:
		return []string{
			"/usr/bin/code",
			"/usr/local/bin/code",
			"/snap/bin/code",
		}
	}
}

// launchTerminal opens an interactive shell rooted at path. The working
// directory is always forced through arguments; terminal profiles that
// default elsewhere must not win.
func (l *Launcher) launchTerminal(path string) error {
	name, err := l.resolveTerminal()
	if err != nil {
		return err
	}

	argv := terminalArgs(name, path)
	if err := l.spawner.Start(argv[0], argv[1:]...); err != nil {
		return &LaunchFailedError{Tool: argv[0], Err: err}
	}
	return nil
}

// linuxTerminals are tried in order on non-windows, non-darwin systems.
var linuxTerminals = []string{"x-terminal-emulator", "gnome-terminal", "konsole", "xfce4-terminal", "xterm"}

// resolveTerminal picks the terminal emulator once per process.
func (l *Launcher) resolveTerminal() (string, error) {
	l.terminalOnce.Do(func() {
		switch l.goos {
		case "windows":
			if _, err := l.spawner.LookPath("wt"); err == nil {
				l.terminalName = "wt"
				return
			}
			if l.fs.Exists(filepath.Join(l.getenv("LOCALAPPDATA"), "Microsoft", "WindowsApps", "wt.exe")) {
				l.terminalName = "wt"
				return
			}
			l.terminalName = "cmd"
		case "darwin":
			l.terminalName = "open"
		default:
			for _, candidate := range linuxTerminals {
				if _, err := l.spawner.LookPath(candidate); err == nil {
					l.terminalName = candidate
					return
				}
			}
			l.terminalErr = &ToolNotFoundError{Tool: "terminal emulator"}
		}
	})
	return l.terminalName, l.terminalErr
}

// terminalArgs builds the argv that opens the given terminal rooted at dir.
func terminalArgs(terminal, dir string) []string {
	switch terminal {
	case "wt":
		return []string{"wt", "-d", dir}
	case "cmd":
		return []string{"cmd", "/K", "cd", "/d", dir}
	case "open":
		return []string{"open", "-a", "Terminal", dir}
	case "konsole":
		return []string{"konsole", "--workdir", dir}
	case "xterm":
		return []string{"xterm", "-e", "sh", "-c", fmt.Sprintf("cd %q && exec ${SHELL:-sh}", dir)}
	default:
		return []string{terminal, "--working-directory=" + dir}
	}
}

// launchFileBrowser opens the path in the configured file manager, or the
// OS default when no override is set.
func (l *Launcher) launchFileBrowser(path string) error {
	tool := l.fileManager
	if tool == "" {
		switch l.goos {
		case "windows":
			tool = "explorer"
		case "darwin":
			tool = "open"
		default:
			tool = "xdg-open"
		}
	} else {
		if _, err := l.spawner.LookPath(tool); err != nil {
			return &ToolNotFoundError{Tool: tool}
		}
	}

	if err := l.spawner.Start(tool, path); err != nil {
		return &LaunchFailedError{Tool: tool, Err: err}
	}
	return nil
}

// launchCustom renders a user command template and spawns it.
func (l *Launcher) launchCustom(cmd CustomCommand, path string) error {
	argv, err := renderCommand(cmd.Template, commandData{
		Path:    path,
		Name:    filepath.Base(path),
		WSLPath: ToWSLPath(path),
	})
	if err != nil {
		return fmt.Errorf("launcher %s: %w", cmd.ID, err)
	}

	if _, err := l.spawner.LookPath(argv[0]); err != nil {
		return &ToolNotFoundError{Tool: argv[0]}
	}

	if err := l.spawner.Start(argv[0], argv[1:]...); err != nil {
		return &LaunchFailedError{Tool: argv[0], Err: err}
	}
	return nil
}
