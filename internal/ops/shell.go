package ops

import (
	"fmt"
	"strings"

	"github.com/kubilitics/kubeplay/internal/parser"
)

// ClearScreen is returned by `clear`; front-ends interpret it instead of
// printing it verbatim.
const ClearScreen = "\x1b[2J\x1b[H"

const helpText = `kubectl commands:
  kubectl get <pods|configmaps|secrets> [name] [-n ns] [-A] [-l selector] [-o table|yaml|json]
  kubectl describe <resource> <name>
  kubectl apply -f <file>
  kubectl create -f <file>
  kubectl delete <resource> <name>
  kubectl logs <pod> [--tail n]
  kubectl exec <pod> -- <command>
  kubectl label <resource> <name> key=value ... [--overwrite]
  kubectl annotate <resource> <name> key=value ... [--overwrite]

shell commands:
  cd, ls, pwd, mkdir, touch, cat, rm, echo, clear, help`

// shell serves the filesystem-style grammar against the virtual
// filesystem. Nothing here touches the cluster store.
func (s *Session) shell(cmd parser.Command) (string, error) {
	fs := s.deps.FS
	switch cmd.Action {
	case "pwd":
		return fs.Getwd(), nil

	case "cd":
		target := "/"
		if len(cmd.Args) > 0 {
			target = cmd.Args[0]
		}
		return "", fs.Chdir(target)

	case "ls":
		target := "."
		if len(cmd.Args) > 0 {
			target = cmd.Args[0]
		}
		entries, err := fs.List(target)
		if err != nil {
			return "", err
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			name := e.Name
			if e.Dir {
				name += "/"
			}
			names = append(names, name)
		}
		return strings.Join(names, "  "), nil

	case "mkdir":
		if len(cmd.Args) == 0 {
			return "", fmt.Errorf("mkdir: missing operand")
		}
		for _, arg := range cmd.Args {
			if err := fs.MkdirAll(arg); err != nil {
				return "", err
			}
		}
		return "", nil

	case "touch":
		if len(cmd.Args) == 0 {
			return "", fmt.Errorf("touch: missing operand")
		}
		for _, arg := range cmd.Args {
			if err := fs.Touch(arg); err != nil {
				return "", err
			}
		}
		return "", nil

	case "cat":
		if len(cmd.Args) == 0 {
			return "", fmt.Errorf("cat: missing operand")
		}
		parts := make([]string, 0, len(cmd.Args))
		for _, arg := range cmd.Args {
			content, err := fs.ReadFile(arg)
			if err != nil {
				return "", err
			}
			parts = append(parts, strings.TrimRight(content, "\n"))
		}
		return strings.Join(parts, "\n"), nil

	case "rm":
		if len(cmd.Args) == 0 {
			return "", fmt.Errorf("rm: missing operand")
		}
		recursive := cmd.Flags["r"] == "true" || cmd.Flags["rf"] == "true"
		for _, arg := range cmd.Args {
			if err := fs.Remove(arg, recursive); err != nil {
				return "", err
			}
		}
		return "", nil

	case "echo":
		return strings.Join(cmd.Args, " "), nil

	case "clear":
		return ClearScreen, nil

	case "help":
		return helpText, nil

	default:
		// Unreachable: the parser validates against the closed action set.
		return "", fmt.Errorf("unhandled shell command %q", cmd.Action)
	}
}
