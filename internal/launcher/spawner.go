package launcher

import (
	"fmt"
	"os/exec"
	"sync"
)

// Spawner provides an abstraction over process creation for testability.
// Launches are fire-and-forget: Start returns once the OS accepted the
// spawn, it never waits for the child.
type Spawner interface {
	// LookPath resolves a tool name to an executable path
	LookPath(name string) (string, error)

	// Start launches the command detached from this process
	Start(name string, args ...string) error
}

// OSSpawner implements Spawner using real processes
type OSSpawner struct{}

// NewOSSpawner creates a new OSSpawner
func NewOSSpawner() *OSSpawner {
	return &OSSpawner{}
}

func (s *OSSpawner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (s *OSSpawner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	// Detach so the child outlives us and we never accumulate zombies.
	return cmd.Process.Release()
}

// SpawnCall records one Start invocation on the mock.
type SpawnCall struct {
	Name string
	Args []string
}

// MockSpawner implements Spawner in memory for tests.
type MockSpawner struct {
	mu sync.Mutex

	// Tools maps known tool names to their resolved paths. LookPath fails
	// for anything not present.
	Tools map[string]string

	// StartErr, when set, is returned by every Start call
	StartErr error

	// Calls records every successful Start
	Calls []SpawnCall
}

// NewMockSpawner creates a mock that knows the given tools.
func NewMockSpawner(tools ...string) *MockSpawner {
	m := &MockSpawner{Tools: make(map[string]string)}
	for _, tool := range tools {
		m.Tools[tool] = "/usr/bin/" + tool
	}
	return m
}

func (m *MockSpawner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path, ok := m.Tools[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%s: executable file not found in $PATH", name)
}

func (m *MockSpawner) Start(name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StartErr != nil {
		return m.StartErr
	}
	m.Calls = append(m.Calls, SpawnCall{Name: name, Args: append([]string(nil), args...)})
	return nil
}

// LastCall returns the most recent Start call, or false when none happened.
func (m *MockSpawner) LastCall() (SpawnCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Calls) == 0 {
		return SpawnCall{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
