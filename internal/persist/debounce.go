package persist

import (
	"sync"
	"time"

	"github.com/kubilitics/kubeplay/internal/events"
	"github.com/kubilitics/kubeplay/internal/state"
)

// persistVerbs is the explicit, closed list of mutations that trigger an
// autosave. Labeled and Annotated are included: a label change that only
// survives until reload would silently lose user work.
var persistVerbs = map[events.Verb]bool{
	events.Created:   true,
	events.Updated:   true,
	events.Deleted:   true,
	events.Labeled:   true,
	events.Annotated: true,
}

// Saver coalesces bursts of mutation events into one delayed snapshot
// save. Every qualifying event arms (or re-arms) a single timer; when the
// quiet window elapses without further mutations, the current full store
// snapshot is serialized through Storage. K mutations inside one window
// yield exactly one save reflecting the state after all K.
type Saver struct {
	storage  Storage
	key      string
	window   time.Duration
	snapshot func() state.Data
	onError  func(error)

	mu    sync.Mutex
	timer *time.Timer
}

// NewSaver builds a debounced saver. snapshot is called at save time, not
// at schedule time, so the persisted state is always the latest. onError
// receives autosave failures (may be nil); they are reported, never
// rolled back against in-memory state.
func NewSaver(storage Storage, key string, window time.Duration, snapshot func() state.Data, onError func(error)) *Saver {
	return &Saver{
		storage:  storage,
		key:      key,
		window:   window,
		snapshot: snapshot,
		onError:  onError,
	}
}

// Attach subscribes the saver to persist-worthy events on the bus.
func (s *Saver) Attach(bus *events.Bus) {
	bus.Subscribe(func(e events.Event) bool {
		return persistVerbs[e.Verb]
	}, func(events.Event) {
		s.schedule()
	})
}

// schedule arms the save timer, cancelling any pending one first.
func (s *Saver) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.fire)
}

func (s *Saver) fire() {
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()
	s.save()
}

// Flush saves immediately if a save is pending and returns the result.
// With no pending save it does nothing.
func (s *Saver) Flush() error {
	s.mu.Lock()
	pending := s.timer != nil
	if pending {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if !pending {
		return nil
	}
	return s.save()
}

// Stop cancels any pending save without writing.
func (s *Saver) Stop() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}

func (s *Saver) save() error {
	err := s.storage.Save(s.key, s.snapshot())
	if err != nil && s.onError != nil {
		s.onError(err)
	}
	return err
}
