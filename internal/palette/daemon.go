package palette

import (
	"context"

	"github.com/devdeck/devdeck/internal/hotkey"
)

// Daemon couples the global-hotkey listener with the palette worker: two
// long-lived background goroutines bridged by single-slot channels. The
// listener recognizes the chord; the worker owns the pre-spawned surface.
type Daemon struct {
	listener *hotkey.Listener
	worker   *Worker
}

// NewDaemon creates a daemon over an already-constructed listener and
// worker.
func NewDaemon(listener *hotkey.Listener, worker *Worker) *Daemon {
	return &Daemon{listener: listener, worker: worker}
}

// Run starts both workers and forwards chord recognitions to the palette
// until the context is done.
func (d *Daemon) Run(ctx context.Context) {
	d.worker.Start()
	d.listener.Start()
	defer d.listener.Stop()
	defer d.worker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.listener.Triggered():
			d.worker.Show()
		}
	}
}
