package palette

import (
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devdeck/devdeck/internal/models"
)

// ProjectSource is the slice of the store the palette reads.
type ProjectSource interface {
	ListByRecency() []*models.Project
	BumpRecency(id string) error
}

// Opener is the slice of the launcher the palette drives. The palette calls
// it directly; there is no network hop in this path.
type Opener interface {
	Launch(path string, launchType models.LaunchType) error
}

// Worker owns the palette surface. The surface (model) is created once at
// startup and reused for every show, so a hotkey press never pays
// construction cost. Show requests arrive on a single-slot channel: rapid
// triggers collapse into one pending show.
type Worker struct {
	source  ProjectSource
	opener  Opener
	actions []Action
	log     *slog.Logger

	show chan struct{}
	done chan struct{}

	// model is owned exclusively by the worker goroutine after Start
	model Model

	// runUI presents the surface and returns the final model; injectable
	// for tests, defaults to running a bubbletea program
	runUI func(Model) (Model, error)

	stopOnce sync.Once
}

// NewWorker creates the palette worker and pre-creates its surface.
func NewWorker(source ProjectSource, opener Opener, actions []Action, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{
		source:  source,
		opener:  opener,
		actions: actions,
		log:     log,
		show:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		model:   NewModel(nil, actions),
		runUI:   runProgram,
	}
}

func runProgram(m Model) (Model, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}

// Show requests the palette. Non-blocking; a show already pending absorbs
// the request.
func (w *Worker) Show() {
	select {
	case w.show <- struct{}{}:
	default:
	}
}

// Start runs the worker loop in a background goroutine until Stop.
func (w *Worker) Start() {
	go w.loop()
}

func (w *Worker) loop() {
	for {
		select {
		case <-w.done:
			return
		case <-w.show:
			w.Present()
		}
	}
}

// Present refreshes the surface with the current recency ranking, shows it,
// and dispatches the selection. Synchronous; the background loop uses it,
// and the CLI calls it directly for a one-shot palette.
func (w *Worker) Present() {
	w.model.SetProjects(w.source.ListByRecency())

	final, err := w.runUI(w.model)
	if err != nil {
		w.log.Warn("palette UI failed", "err", err)
		return
	}

	project, action := final.Selected()
	if project == nil {
		return
	}

	if err := w.opener.Launch(project.Path, models.LaunchType(action)); err != nil {
		w.log.Warn("launch from palette failed", "project", project.Name, "action", action, "err", err)
		return
	}
	if err := w.source.BumpRecency(project.ID); err != nil {
		w.log.Warn("failed to record recency", "project", project.Name, "err", err)
	}
}

// Stop ends the worker loop.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}
