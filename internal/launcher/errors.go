package launcher

import (
	"errors"
	"fmt"
)

// ErrUnknownLaunchType is returned for a launch type that is neither
// builtin nor configured as a custom command.
var ErrUnknownLaunchType = errors.New("unknown launch type")

// ToolNotFoundError means tool resolution failed; no process was spawned.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Tool)
}

// PathNotFoundError means the project path does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// LaunchFailedError wraps an OS spawn failure. The tool resolved and the
// path existed; the spawn itself failed.
type LaunchFailedError struct {
	Tool string
	Err  error
}

func (e *LaunchFailedError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Tool, e.Err)
}

func (e *LaunchFailedError) Unwrap() error {
	return e.Err
}
