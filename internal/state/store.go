package state

import (
	"sync"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/kubilitics/kubeplay/internal/cluster"
	"github.com/kubilitics/kubeplay/internal/events"
)

// Store wraps a Data snapshot behind read-only queries. Mutation happens
// exclusively through the reducer, which Attach registers as the first bus
// subscriber so every later subscriber observes post-mutation state.
//
// The RWMutex exists for one reader off the command loop: the persistence
// debounce timer, which snapshots the store when its quiet window elapses.
type Store struct {
	mu   sync.RWMutex
	data Data
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Attach subscribes the store's reducer to the bus.
func (s *Store) Attach(bus *events.Bus) {
	bus.SubscribeAll(func(e events.Event) {
		s.mu.Lock()
		s.data = Reduce(s.data, e)
		s.mu.Unlock()
	})
}

// Get returns the resource for (kind, name, namespace), or a NotFound
// error in kubectl's own wording (`pods "web" not found`).
func (s *Store) Get(kind cluster.Kind, name, namespace string) (cluster.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.data.bucket(kind)
	if idx := indexOf(items, name, namespace); idx >= 0 {
		return items[idx].DeepCopy(), nil
	}
	return cluster.Resource{}, apierrors.NewNotFound(kind.GroupResource(), name)
}

// List returns the resources of a kind in insertion order. An empty
// namespace means all namespaces; a nil selector matches everything.
func (s *Store) List(kind cluster.Kind, namespace string, sel labels.Selector) []cluster.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.data.bucket(kind)
	out := make([]cluster.Resource, 0, len(items))
	for i := range items {
		if namespace != "" && items[i].Namespace() != namespace {
			continue
		}
		if sel != nil && !sel.Matches(labels.Set(items[i].Labels())) {
			continue
		}
		out = append(out, items[i].DeepCopy())
	}
	return out
}

// Snapshot returns a deep copy of the full cluster state.
func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.DeepCopy()
}

// Restore replaces the full cluster state, e.g. from a persisted snapshot
// at start-up.
func (s *Store) Restore(d Data) {
	s.mu.Lock()
	s.data = d.DeepCopy()
	s.mu.Unlock()
}
