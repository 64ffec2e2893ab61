package palette

import (
	"context"
	"testing"
	"time"

	"github.com/devdeck/devdeck/internal/hotkey"
	"github.com/devdeck/devdeck/internal/models"
)

func TestDaemon_HotkeyShowsPalette(t *testing.T) {
	chord, err := hotkey.ParseChord("super+shift+w")
	if err != nil {
		t.Fatalf("ParseChord() error = %v", err)
	}
	source := hotkey.NewMockEventSource()
	listener := hotkey.NewListener(chord, source)

	projects := &stubSource{projects: []*models.Project{
		{ID: "p1", Name: "shop", Path: "/p/shop"},
	}}
	opener := newStubOpener()

	w := NewWorker(projects, opener, testActions(), nil)

	presented := make(chan struct{}, 16)
	w.runUI = func(m Model) (Model, error) {
		presented <- struct{}{}
		if len(m.filtered) > 0 {
			m.selected = m.filtered[0]
			m.action = "editor"
		}
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewDaemon(listener, w).Run(ctx)
		close(done)
	}()

	source.Press("super", "shift", "w")

	select {
	case <-presented:
	case <-time.After(time.Second):
		t.Fatal("hotkey did not open the palette")
	}

	select {
	case <-opener.launch:
	case <-time.After(time.Second):
		t.Fatal("selection was not launched")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("daemon did not stop")
	}
}
