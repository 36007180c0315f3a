package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubilitics/kubeplay/internal/ui"
)

// newEvalCmd runs a single command line against the playground and
// exits. Useful for scripting and for inspecting persisted state.
func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <command line>",
		Short: "Evaluate one playground command and exit",
		Example: `  kubeplay eval "kubectl apply -f /manifests/pod.yaml"
  kubeplay eval "kubectl get pods -o yaml"
  echo "kubectl get pods" | kubeplay eval -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPlayground()
			if err != nil {
				return err
			}
			defer closePlayground(p, a.stderr)

			// `eval -` reads command lines from stdin until EOF.
			if len(args) == 1 && args[0] == "-" {
				return a.runREPL(p)
			}

			out, err := p.Eval(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if out != ui.ClearScreen && strings.TrimSpace(out) != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}
