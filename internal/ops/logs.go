package ops

import (
	"fmt"
	"strings"

	"github.com/kubilitics/kubeplay/internal/cluster"
	"github.com/kubilitics/kubeplay/internal/parser"
	"github.com/kubilitics/kubeplay/internal/synth"
)

// logs prints synthetic log lines for an existing pod.
func (s *Session) logs(cmd parser.Command) (string, error) {
	res, err := s.deps.Store.Get(cmd.Kind, cmd.Name, cmd.Namespace)
	if err != nil {
		return "", err
	}
	if err := checkContainer(cmd, res); err != nil {
		return "", err
	}
	n := synth.DefaultLogLines
	if _, set := cmd.Flags["tail"]; set {
		n = cmd.Tail
	}
	if n == 0 {
		return "", nil
	}
	return strings.Join(synth.Logs(cmd.Name, n, s.deps.Clock()), "\n"), nil
}

// exec simulates running the trailing command inside an existing pod.
func (s *Session) exec(cmd parser.Command) (string, error) {
	res, err := s.deps.Store.Get(cmd.Kind, cmd.Name, cmd.Namespace)
	if err != nil {
		return "", err
	}
	if len(cmd.ExecArgs) == 0 {
		return "", fmt.Errorf("you must specify a command to execute: kubectl exec %s -- <command>", cmd.Name)
	}
	if err := checkContainer(cmd, res); err != nil {
		return "", err
	}
	return synth.Exec(res, cmd.ExecArgs)
}

// checkContainer validates an explicit -c flag against the pod's
// declared containers.
func checkContainer(cmd parser.Command, res cluster.Resource) error {
	if cmd.Container == "" || res.Spec == nil {
		return nil
	}
	for _, c := range res.Spec.Containers {
		if c.Name == cmd.Container {
			return nil
		}
	}
	return fmt.Errorf("container %q not found in pod %q", cmd.Container, cmd.Name)
}
