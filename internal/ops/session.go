// Package ops implements the resource operation handlers: they consult
// the store, decide success or failure, and on success emit exactly one
// event through the bus. On failure nothing is emitted and the store is
// left untouched.
package ops

import (
	"fmt"
	"time"

	"github.com/kubilitics/kubeplay/internal/events"
	"github.com/kubilitics/kubeplay/internal/parser"
	"github.com/kubilitics/kubeplay/internal/state"
	"github.com/kubilitics/kubeplay/internal/vfs"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

// Deps are the explicit collaborators of a session. No globals: the
// caller constructs store, bus and filesystem once and passes them in.
type Deps struct {
	Store *state.Store
	Bus   *events.Bus
	FS    *vfs.FS

	// Clock supplies event timestamps; nil means time.Now.
	Clock func() time.Time

	// Source is the origin tag stamped on emitted events ("kubectl").
	Source string
}

// Session routes parsed commands to their handlers.
type Session struct {
	deps Deps
}

// NewSession builds a session, filling in defaults for Clock and Source.
func NewSession(deps Deps) *Session {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Source == "" {
		deps.Source = "kubectl"
	}
	return &Session{deps: deps}
}

// Execute runs one parsed command and returns its user-visible output.
// Every error returned here is a complete user-facing message; nothing
// panics past this boundary.
func (s *Session) Execute(cmd parser.Command) (string, error) {
	if cmd.Grammar == parser.GrammarShell {
		return s.shell(cmd)
	}
	switch cmd.Action {
	case "get":
		return s.get(cmd)
	case "describe":
		return s.describe(cmd)
	case "apply":
		return s.apply(cmd)
	case "create":
		return s.create(cmd)
	case "delete":
		return s.delete(cmd)
	case "logs":
		return s.logs(cmd)
	case "exec":
		return s.exec(cmd)
	case "label":
		return s.updateMetadata(cmd, fieldLabel)
	case "annotate":
		return s.updateMetadata(cmd, fieldAnnotation)
	default:
		// Unreachable: the parser validates against the closed action set.
		return "", fmt.Errorf("unhandled action %q", cmd.Action)
	}
}

// emit stamps and publishes one mutation event.
func (s *Session) emit(verb events.Verb, res cluster.Resource, prev *cluster.Resource) {
	s.deps.Bus.Emit(events.New(verb, res, prev, s.deps.Source, s.deps.Clock()))
}
