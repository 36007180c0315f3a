package parser

import (
	"errors"
	"fmt"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

// Grammar tells which vocabulary a command line belongs to. The two
// grammars share the same pipeline machinery but have independent action
// and flag vocabularies.
type Grammar string

const (
	GrammarKubectl Grammar = "kubectl"
	GrammarShell   Grammar = "shell"
)

// Format is the output format of read commands.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Command is the structured result of parsing one input line. Built once
// per line and never modified afterwards.
type Command struct {
	Grammar Grammar
	Action  string

	// Kubectl grammar fields. Kind is empty for apply/create, whose kind
	// is resolved from the manifest.
	Kind          cluster.Kind
	Name          string
	Namespace     string
	AllNamespaces bool
	Output        Format
	Selector      map[string]string
	Filename      string
	Container     string
	Tail          int
	Overwrite     bool

	// ExecArgs is the literal command after the `--` separator of exec.
	ExecArgs []string

	// ChangeSet holds label/annotate mutations: key to new value, or nil
	// to remove the key.
	ChangeSet map[string]*string

	// Flags is the raw canonical-name flag map; boolean flags hold "true".
	Flags map[string]string

	// Args are the positional arguments of shell-grammar commands.
	Args []string
}

var kubectlActions = map[string]bool{
	"get":      true,
	"describe": true,
	"delete":   true,
	"apply":    true,
	"create":   true,
	"logs":     true,
	"exec":     true,
	"label":    true,
	"annotate": true,
}

var shellActions = map[string]bool{
	"cd":    true,
	"ls":    true,
	"pwd":   true,
	"mkdir": true,
	"touch": true,
	"cat":   true,
	"rm":    true,
	"echo":  true,
	"clear": true,
	"help":  true,
}

// actions that cannot run without a resolved resource name.
var nameRequired = map[string]bool{
	"delete":   true,
	"describe": true,
	"logs":     true,
	"exec":     true,
	"label":    true,
	"annotate": true,
}

// ParseError reports a rejected input line. Parse errors never reach the
// store: nothing is mutated when one is returned.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// IsParseError reports whether err (or anything it wraps) is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
