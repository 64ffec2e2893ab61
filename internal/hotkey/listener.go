package hotkey

import (
	"sync"
	"time"
)

// Event is one key transition from the OS keyboard hook. Key names are
// normalized lowercase ("super", "shift", "w", ...).
type Event struct {
	Key     string
	Pressed bool
}

// EventSource delivers global keyboard events. The OS-specific hook lives
// behind this interface; tests feed events in directly.
type EventSource interface {
	Events() <-chan Event
	Close() error
}

// cooldown suppresses re-triggers while the chord is held or mashed.
const cooldown = 300 * time.Millisecond

// Listener watches the global keyboard state for a chord. Recognitions are
// delivered on a single-slot channel: rapid repeats collapse into one
// pending trigger instead of queueing.
//
// A Listener is an owned object with an explicit start/stop lifecycle, not
// a process-wide singleton; tests create and tear down their own.
type Listener struct {
	chord  Chord
	source EventSource

	trigger chan struct{}
	done    chan struct{}

	// now is injectable for cooldown tests
	now func() time.Time

	stopOnce sync.Once
}

// NewListener creates a listener for the chord over the given source.
func NewListener(chord Chord, source EventSource) *Listener {
	return &Listener{
		chord:   chord,
		source:  source,
		trigger: make(chan struct{}, 1),
		done:    make(chan struct{}),
		now:     time.Now,
	}
}

// Triggered returns the single-slot channel that fires on recognition.
func (l *Listener) Triggered() <-chan struct{} {
	return l.trigger
}

// Start begins consuming events in a background goroutine.
func (l *Listener) Start() {
	go l.loop()
}

func (l *Listener) loop() {
	pressed := make(map[string]bool)
	var lastFire time.Time

	for {
		select {
		case <-l.done:
			return
		case event, ok := <-l.source.Events():
			if !ok {
				return
			}

			if !event.Pressed {
				delete(pressed, event.Key)
				continue
			}

			fire := l.chord.matches(pressed, event.Key) && l.now().Sub(lastFire) >= cooldown
			pressed[event.Key] = true
			if !fire {
				continue
			}
			lastFire = l.now()

			// Single slot: drop the trigger when one is already pending.
			select {
			case l.trigger <- struct{}{}:
			default:
			}
		}
	}
}

// Stop ends the listen loop and closes the source.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		l.source.Close()
	})
}

// MockEventSource is an in-memory EventSource for tests.
type MockEventSource struct {
	ch chan Event
}

// NewMockEventSource creates a mock source.
func NewMockEventSource() *MockEventSource {
	return &MockEventSource{ch: make(chan Event, 64)}
}

func (m *MockEventSource) Events() <-chan Event {
	return m.ch
}

// Emit feeds one event into the source.
func (m *MockEventSource) Emit(key string, pressed bool) {
	m.ch <- Event{Key: key, Pressed: pressed}
}

// Press emits press events for each key in order.
func (m *MockEventSource) Press(keys ...string) {
	for _, key := range keys {
		m.Emit(key, true)
	}
}

// Release emits release events for each key in order.
func (m *MockEventSource) Release(keys ...string) {
	for _, key := range keys {
		m.Emit(key, false)
	}
}

func (m *MockEventSource) Close() error {
	close(m.ch)
	return nil
}
