// Package cli wires the playground into a cobra command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	kcfg "github.com/kubilitics/kubeplay/internal/config"
	"github.com/kubilitics/kubeplay/internal/persist"
	"github.com/kubilitics/kubeplay/internal/version"
	"github.com/kubilitics/kubeplay/pkg/playground"
)

type app struct {
	cfg       *kcfg.Config
	cfgErr    error
	noPersist bool
	stateDir  string
	verbose   bool
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewRootCommandWithIO(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return newRootCommand(in, out, errOut)
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cfg, cfgErr := kcfg.Load()
	if cfg == nil {
		cfg = kcfg.Default()
	}
	a := &app{
		cfg:    cfg,
		cfgErr: cfgErr,
		stdin:  in,
		stdout: out,
		stderr: errOut,
	}

	cmd := &cobra.Command{
		Use:           "kubeplay",
		Short:         "A kubectl playground with a simulated in-memory cluster",
		Long:          "kubeplay runs kubectl-style commands against a simulated cluster: no kubeconfig, no network, state persisted between sessions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTerminal(cmd)
		},
	}

	cmd.PersistentFlags().BoolVar(&a.noPersist, "no-persist", false, "keep cluster state in memory only")
	cmd.PersistentFlags().StringVar(&a.stateDir, "state-dir", "", "directory for persisted cluster state")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log cluster events to stderr")

	cmd.AddCommand(
		newEvalCmd(a),
		newResetCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	cmd.SetVersionTemplate(fmt.Sprintf("kubeplay {{.Version}} (commit %s, built %s)\n", version.Commit, version.BuildDate))

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if a.cfgErr != nil {
			return fmt.Errorf("invalid %s: %w", configPathSafe(), a.cfgErr)
		}
		return nil
	}

	cmd.SetErrPrefix("kubeplay: ")
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

// storage picks the snapshot backend from flags and config. Memory
// storage when persistence is off, file storage otherwise.
func (a *app) storage() (persist.Storage, error) {
	if a.noPersist || !a.cfg.Persistence.Enabled {
		return persist.NewMemoryStorage(), nil
	}
	dir := a.stateDir
	if dir == "" {
		dir = a.cfg.Persistence.Dir
	}
	if dir == "" {
		d, err := persist.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return persist.NewFileStorage(dir), nil
}

func (a *app) logger() *slog.Logger {
	if !a.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (a *app) newPlayground() (*playground.Playground, error) {
	storage, err := a.storage()
	if err != nil {
		return nil, err
	}
	return playground.New(playground.Options{
		Storage:          storage,
		StateKey:         a.cfg.Persistence.StateKey,
		DebounceWindow:   a.cfg.DebounceWindowDuration(),
		HistorySize:      a.cfg.History.Size,
		Logger:           a.logger(),
		DefaultNamespace: a.cfg.Cluster.DefaultNamespace,
		SkipSeed:         !a.cfg.Cluster.Seed,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show kubeplay build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "kubeplay %s (commit %s, built %s)\n", version.Version, version.Commit, version.BuildDate)
			return nil
		},
	}
}

func configPathSafe() string {
	path, err := kcfg.FilePath()
	if err != nil || strings.TrimSpace(path) == "" {
		return "config"
	}
	return path
}

func closePlayground(p *playground.Playground, errOut io.Writer) {
	if err := p.Close(); err != nil {
		fmt.Fprintf(errOut, "kubeplay: saving state: %v\n", err)
	}
}
