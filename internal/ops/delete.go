package ops

import (
	"fmt"

	"github.com/kubilitics/kubeplay/internal/events"
	"github.com/kubilitics/kubeplay/internal/parser"
)

// delete removes the named resource. A missing target is a NotFound
// error and nothing is emitted.
func (s *Session) delete(cmd parser.Command) (string, error) {
	old, err := s.deps.Store.Get(cmd.Kind, cmd.Name, cmd.Namespace)
	if err != nil {
		return "", err
	}
	s.emit(events.Deleted, old, nil)
	return fmt.Sprintf("%s %q deleted", cmd.Kind.Lower(), cmd.Name), nil
}
