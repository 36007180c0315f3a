// Package events defines the mutation facts of the playground and the bus
// that distributes them. Events are the only channel through which cluster
// state changes: operation handlers emit them, the store reducer consumes
// them, and auxiliary subscribers (audit log, persistence debouncer)
// observe them.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

// Verb is the mutation performed by an event.
type Verb string

const (
	Created   Verb = "Created"
	Updated   Verb = "Updated"
	Deleted   Verb = "Deleted"
	Labeled   Verb = "Labeled"
	Annotated Verb = "Annotated"
)

// Event is an immutable fact describing a completed mutation.
//
// Resource carries the state after the mutation; for Deleted it carries the
// resource that was removed. Previous is set for Updated, Labeled and
// Annotated only.
type Event struct {
	ID        string            `json:"id"`
	Verb      Verb              `json:"verb"`
	Kind      cluster.Kind      `json:"kind"`
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	Resource  *cluster.Resource `json:"resource,omitempty"`
	Previous  *cluster.Resource `json:"previous,omitempty"`
	Source    string            `json:"source"`
	Timestamp time.Time         `json:"timestamp"`
}

// New builds an event for the given mutation. The resource snapshots are
// deep-copied so later store mutations cannot alter recorded history.
func New(verb Verb, res cluster.Resource, prev *cluster.Resource, source string, at time.Time) Event {
	e := Event{
		ID:        uuid.NewString(),
		Verb:      verb,
		Kind:      res.Kind,
		Name:      res.Name(),
		Namespace: res.Namespace(),
		Source:    source,
		Timestamp: at,
	}
	snap := res.DeepCopy()
	e.Resource = &snap
	if prev != nil {
		p := prev.DeepCopy()
		e.Previous = &p
	}
	return e
}

// Type returns the combined discriminant, e.g. "PodCreated".
func (e Event) Type() string {
	return string(e.Kind) + string(e.Verb)
}
