// Package state holds the cluster snapshot and the reducer that is the
// only code allowed to change it. The reducer consumes events; it never
// produces them.
package state

import (
	"github.com/kubilitics/kubeplay/internal/cluster"
	"github.com/kubilitics/kubeplay/internal/events"
)

// Data is the full cluster snapshot: one ordered collection per kind,
// preserving insertion order. It is what the persistence layer serializes
// wholesale on every save.
type Data struct {
	Pods       []cluster.Resource `json:"pods"`
	ConfigMaps []cluster.Resource `json:"configMaps"`
	Secrets    []cluster.Resource `json:"secrets"`
}

// Empty returns a snapshot with no resources.
func Empty() Data {
	return Data{}
}

func (d Data) bucket(k cluster.Kind) []cluster.Resource {
	switch k {
	case cluster.Pod:
		return d.Pods
	case cluster.ConfigMap:
		return d.ConfigMaps
	case cluster.Secret:
		return d.Secrets
	}
	return nil
}

func (d *Data) setBucket(k cluster.Kind, items []cluster.Resource) {
	switch k {
	case cluster.Pod:
		d.Pods = items
	case cluster.ConfigMap:
		d.ConfigMaps = items
	case cluster.Secret:
		d.Secrets = items
	}
}

// DeepCopy returns a snapshot sharing no mutable state with the receiver.
func (d Data) DeepCopy() Data {
	cp := func(in []cluster.Resource) []cluster.Resource {
		if in == nil {
			return nil
		}
		out := make([]cluster.Resource, len(in))
		for i := range in {
			out[i] = in[i].DeepCopy()
		}
		return out
	}
	return Data{
		Pods:       cp(d.Pods),
		ConfigMaps: cp(d.ConfigMaps),
		Secrets:    cp(d.Secrets),
	}
}

// Reduce applies a single event to a snapshot and returns the resulting
// snapshot. Pure: the input is never modified. Created appends, Deleted
// removes, and every other verb replaces the matching resource in place,
// preserving its position in the collection. Events that reference a
// missing resource (or a duplicate on Created) leave the snapshot
// unchanged; handlers validate before emitting, so such events indicate a
// replayed or stale stream, not a user error.
func Reduce(d Data, e events.Event) Data {
	if e.Resource == nil {
		return d
	}
	out := d
	items := d.bucket(e.Kind)
	idx := indexOf(items, e.Name, e.Namespace)

	switch e.Verb {
	case events.Created:
		if idx >= 0 {
			return d
		}
		next := make([]cluster.Resource, 0, len(items)+1)
		next = append(next, items...)
		next = append(next, e.Resource.DeepCopy())
		out.setBucket(e.Kind, next)

	case events.Updated, events.Labeled, events.Annotated:
		if idx < 0 {
			return d
		}
		next := make([]cluster.Resource, len(items))
		copy(next, items)
		next[idx] = e.Resource.DeepCopy()
		out.setBucket(e.Kind, next)

	case events.Deleted:
		if idx < 0 {
			return d
		}
		next := make([]cluster.Resource, 0, len(items)-1)
		next = append(next, items[:idx]...)
		next = append(next, items[idx+1:]...)
		out.setBucket(e.Kind, next)
	}
	return out
}

func indexOf(items []cluster.Resource, name, namespace string) int {
	for i := range items {
		if items[i].Name() == name && items[i].Namespace() == namespace {
			return i
		}
	}
	return -1
}
