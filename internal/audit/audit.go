// Package audit writes one structured log line per cluster event. The
// core never formats human-readable output itself; this subscriber is the
// single place events become log text.
package audit

import (
	"log/slog"

	"github.com/kubilitics/kubeplay/internal/events"
)

// Logger is a bus subscriber that records every emitted event.
type Logger struct {
	log *slog.Logger
}

// NewLogger wraps l; nil falls back to slog.Default().
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{log: l}
}

// Attach subscribes the logger to all events on the bus.
func (a *Logger) Attach(bus *events.Bus) {
	bus.SubscribeAll(a.record)
}

func (a *Logger) record(e events.Event) {
	a.log.Info("cluster event",
		"type", e.Type(),
		"namespace", e.Namespace,
		"name", e.Name,
		"source", e.Source,
		"id", e.ID,
	)
}

// SaveFailed records an autosave failure. The in-memory state stays
// authoritative; the divergence is surfaced here and nowhere else.
func (a *Logger) SaveFailed(err error) {
	a.log.Error("autosave failed", "error", err)
}
