// Package parser turns one raw input line into a validated Command.
//
// The pipeline is railway-oriented: each stage either advances the parse
// or returns a ParseError, and the first failure short-circuits all later
// stages. Parse is pure; the same input always yields a structurally
// equal result.
package parser

import (
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

// parse carries the intermediate state threaded through the stages.
type parse struct {
	tokens     []string
	positional []string
	flags      map[string]string
	kindSet    bool
	nameSet    bool
	cmd        Command
}

type stage func(*parse) error

var kubectlStages = []stage{
	extractAction,
	applyTransformer,
	parseFlagTokens,
	extractKind,
	extractName,
	requireResolvedName,
	assemble,
}

// Parse parses a raw command line in either grammar.
func Parse(input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{}, parseErrorf("empty command")
	}
	p := &parse{tokens: strings.Fields(trimmed)}

	if err := route(p); err != nil {
		return Command{}, err
	}
	stages := kubectlStages
	if p.cmd.Grammar == GrammarShell {
		stages = []stage{parseFlagTokens, assembleShell}
	}
	for _, run := range stages {
		if err := run(p); err != nil {
			return Command{}, err
		}
	}
	return p.cmd, nil
}

// route decides which grammar the line belongs to from its leading token.
func route(p *parse) error {
	head := p.tokens[0]
	switch {
	case head == "kubectl":
		p.cmd.Grammar = GrammarKubectl
	case shellActions[head]:
		p.cmd.Grammar = GrammarShell
		p.cmd.Action = head
	default:
		return parseErrorf("unknown command %q: expected kubectl or a shell command", head)
	}
	return nil
}

func extractAction(p *parse) error {
	if len(p.tokens) < 2 {
		return parseErrorf("missing action: usage: kubectl <action> [resource] [name] [flags]")
	}
	action := p.tokens[1]
	if !kubectlActions[action] {
		return parseErrorf("unknown action %q", action)
	}
	p.cmd.Action = action
	return nil
}

func applyTransformer(p *parse) error {
	if t, ok := transformers[p.cmd.Action]; ok {
		return t(p)
	}
	return nil
}

func parseFlagTokens(p *parse) error {
	flags, positional, err := extractFlags(p.tokens)
	if err != nil {
		return err
	}
	p.flags = flags
	p.positional = positional
	return nil
}

// extractKind resolves the resource type at its fixed position, unless a
// transformer already decided it.
func extractKind(p *parse) error {
	if p.kindSet {
		return nil
	}
	if len(p.positional) < 3 {
		return parseErrorf("%s requires a resource type", p.cmd.Action)
	}
	kind, ok := cluster.ParseKind(p.positional[2])
	if !ok {
		return parseErrorf("unknown resource type %q", p.positional[2])
	}
	p.cmd.Kind = kind
	return nil
}

// extractName picks the resource name. Actions with an explicit resource
// type token carry the name one position later; actions whose kind was
// defaulted (logs, exec, apply, create) carry it right after the action.
func extractName(p *parse) error {
	if p.nameSet {
		return nil
	}
	at := 3
	switch p.cmd.Action {
	case "logs", "exec", "apply", "create":
		at = 2
	}
	if len(p.positional) > at {
		p.cmd.Name = p.positional[at]
	}
	return nil
}

func requireResolvedName(p *parse) error {
	if nameRequired[p.cmd.Action] && p.cmd.Name == "" {
		return parseErrorf("%s requires a resource name", p.cmd.Action)
	}
	return nil
}

// assemble derives the typed fields from the raw flag map and finishes
// the Command.
func assemble(p *parse) error {
	p.cmd.Flags = p.flags
	p.cmd.Namespace = p.flags["namespace"]
	if p.cmd.Namespace == "" {
		p.cmd.Namespace = "default"
	}
	p.cmd.AllNamespaces = p.flags["all-namespaces"] == "true"
	p.cmd.Filename = p.flags["filename"]
	p.cmd.Container = p.flags["container"]
	p.cmd.Overwrite = p.flags["overwrite"] == "true"

	out := p.flags["output"]
	if out == "" {
		out = string(FormatTable)
	}
	switch Format(out) {
	case FormatTable, FormatYAML, FormatJSON:
		p.cmd.Output = Format(out)
	default:
		return parseErrorf("unsupported output format %q (supported: table, yaml, json)", out)
	}

	if sel := p.flags["selector"]; sel != "" {
		set, err := labels.ConvertSelectorToLabelsMap(sel)
		if err != nil {
			return parseErrorf("invalid selector %q: %v", sel, err)
		}
		p.cmd.Selector = map[string]string(set)
	}

	if tail := p.flags["tail"]; tail != "" {
		n, err := strconv.Atoi(tail)
		if err != nil || n < 0 {
			return parseErrorf("invalid --tail value %q", tail)
		}
		p.cmd.Tail = n
	}
	return nil
}

// assembleShell finishes a shell-grammar command: flags stay raw, the
// remaining tokens become positional arguments.
func assembleShell(p *parse) error {
	p.cmd.Flags = p.flags
	if len(p.positional) > 1 {
		p.cmd.Args = append([]string(nil), p.positional[1:]...)
	}
	return nil
}
