// Package playground is the embeddable facade of the kubectl simulator.
// A host (the CLI, a test, a larger application) constructs one
// Playground and feeds it command lines; everything else — parsing,
// store, event bus, audit log, debounced persistence — is wired here.
package playground

import (
	"errors"
	"log/slog"
	"time"

	"github.com/kubilitics/kubeplay/internal/audit"
	"github.com/kubilitics/kubeplay/internal/events"
	"github.com/kubilitics/kubeplay/internal/ops"
	"github.com/kubilitics/kubeplay/internal/parser"
	"github.com/kubilitics/kubeplay/internal/persist"
	"github.com/kubilitics/kubeplay/internal/state"
	"github.com/kubilitics/kubeplay/internal/vfs"
)

const (
	// DefaultStateKey is the storage key of the cluster snapshot.
	DefaultStateKey = "cluster"

	// DefaultDebounceWindow is the quiet period after the last mutation
	// before a snapshot is persisted.
	DefaultDebounceWindow = 500 * time.Millisecond

	// DefaultHistorySize bounds the event history ring.
	DefaultHistorySize = 100
)

// ClearScreen is returned by the `clear` command; front-ends interpret
// it instead of printing it.
const ClearScreen = ops.ClearScreen

// Options configure a Playground. The zero value is usable: in-memory
// storage, real clock, defaults for everything else.
type Options struct {
	// Storage persists cluster snapshots; nil means in-memory only.
	Storage persist.Storage

	// StateKey is the storage key; empty means DefaultStateKey.
	StateKey string

	// DebounceWindow overrides DefaultDebounceWindow when positive.
	DebounceWindow time.Duration

	// HistorySize overrides DefaultHistorySize when positive.
	HistorySize int

	// Logger receives the audit stream; nil means slog.Default().
	Logger *slog.Logger

	// Clock supplies timestamps; nil means time.Now.
	Clock func() time.Time

	// Source tags emitted events; empty means "kubectl".
	Source string

	// DefaultNamespace applies to kubectl commands that carry no -n flag;
	// empty keeps the parser's built-in "default".
	DefaultNamespace string

	// SkipSeed leaves the virtual filesystem empty instead of writing
	// the bundled example manifests.
	SkipSeed bool
}

// Playground owns one simulated cluster session.
type Playground struct {
	bus       *events.Bus
	store     *state.Store
	fs        *vfs.FS
	session   *ops.Session
	saver     *persist.Saver
	defaultNS string
}

// New wires a playground: reducer first on the bus, then audit logging,
// then the persistence debouncer, so subscribers always observe
// post-mutation state. A persisted snapshot, when present, is restored
// before the first command runs.
func New(opts Options) (*Playground, error) {
	if opts.Storage == nil {
		opts.Storage = persist.NewMemoryStorage()
	}
	if opts.StateKey == "" {
		opts.StateKey = DefaultStateKey
	}
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultDebounceWindow
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}

	bus := events.NewBus(opts.HistorySize)
	store := state.NewStore()
	store.Attach(bus)

	logger := audit.NewLogger(opts.Logger)
	logger.Attach(bus)

	saver := persist.NewSaver(opts.Storage, opts.StateKey, opts.DebounceWindow, store.Snapshot, logger.SaveFailed)
	saver.Attach(bus)

	fs := vfs.New()
	if !opts.SkipSeed {
		if err := seed(fs); err != nil {
			return nil, err
		}
	}

	var snapshot state.Data
	err := opts.Storage.Load(opts.StateKey, &snapshot)
	switch {
	case err == nil:
		store.Restore(snapshot)
	case errors.Is(err, persist.ErrNotExist):
		// First run: nothing to restore.
	default:
		return nil, err
	}

	session := ops.NewSession(ops.Deps{
		Store:  store,
		Bus:    bus,
		FS:     fs,
		Clock:  opts.Clock,
		Source: opts.Source,
	})

	return &Playground{
		bus:       bus,
		store:     store,
		fs:        fs,
		session:   session,
		saver:     saver,
		defaultNS: opts.DefaultNamespace,
	}, nil
}

// Eval parses and executes one command line, returning its user-visible
// output. Every failure comes back as an error value; nothing panics
// past this boundary.
func (p *Playground) Eval(line string) (string, error) {
	cmd, err := parser.Parse(line)
	if err != nil {
		return "", err
	}
	// An explicit -n always wins; the configured default only fills in
	// for commands that never named a namespace.
	if p.defaultNS != "" && cmd.Grammar == parser.GrammarKubectl && cmd.Flags["namespace"] == "" {
		cmd.Namespace = p.defaultNS
	}
	return p.session.Execute(cmd)
}

// History returns the retained event history, oldest first.
func (p *Playground) History() []events.Event {
	return p.bus.History()
}

// Snapshot returns a deep copy of the current cluster state.
func (p *Playground) Snapshot() state.Data {
	return p.store.Snapshot()
}

// Flush forces any pending debounced save to disk now.
func (p *Playground) Flush() error {
	return p.saver.Flush()
}

// Close flushes pending saves and stops the debounce timer.
func (p *Playground) Close() error {
	err := p.saver.Flush()
	p.saver.Stop()
	return err
}
