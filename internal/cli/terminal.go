package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kubilitics/kubeplay/internal/terminal"
	"github.com/kubilitics/kubeplay/internal/ui"
)

const banner = `kubeplay: a kubectl playground. Type "help" for commands.`

// runTerminal starts the interactive session: the full-screen terminal
// on a TTY, a line-oriented REPL otherwise (pipes, CI).
func (a *app) runTerminal(cmd *cobra.Command) error {
	p, err := a.newPlayground()
	if err != nil {
		return err
	}
	defer closePlayground(p, a.stderr)

	if !isTerminal() {
		return a.runREPL(p)
	}
	return ui.Run(ui.Options{
		Evaluator: p,
		Prompt:    a.cfg.General.Prompt,
		Colors:    a.cfg.General.Colors && !terminal.ColorDisabled(),
		Banner:    banner,
	})
}

// runREPL reads command lines from stdin until EOF. Errors are printed
// and do not stop the loop, matching interactive behavior.
func (a *app) runREPL(p evaluator) error {
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out, err := p.Eval(line)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			continue
		}
		if out == ui.ClearScreen {
			continue
		}
		if strings.TrimSpace(out) != "" {
			fmt.Fprintln(a.stdout, out)
		}
	}
	return scanner.Err()
}

type evaluator interface {
	Eval(line string) (string, error)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
