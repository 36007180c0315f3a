package parser

import (
	"strings"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

// A transformer rewrites the token stream for one action before the
// generic flag and positional extraction runs. Most actions need none.
type transformer func(p *parse) error

var transformers = map[string]transformer{
	"exec":     transformExec,
	"logs":     transformLogs,
	"apply":    transformManifest,
	"create":   transformManifest,
	"label":    transformChangeSet,
	"annotate": transformChangeSet,
}

// transformExec forces the pod kind and captures everything after the
// `--` separator as the literal command to run, stripping it from the
// token stream so flag parsing never sees it.
func transformExec(p *parse) error {
	p.cmd.Kind = cluster.Pod
	p.kindSet = true
	for i := 2; i < len(p.tokens); i++ {
		if p.tokens[i] == "--" {
			p.cmd.ExecArgs = append([]string(nil), p.tokens[i+1:]...)
			p.tokens = p.tokens[:i]
			break
		}
	}
	return nil
}

// transformLogs defaults the resource kind to pod; `kubectl logs web`
// needs no explicit resource-type token.
func transformLogs(p *parse) error {
	p.cmd.Kind = cluster.Pod
	p.kindSet = true
	return nil
}

// transformManifest marks apply/create as kind-resolved: their kind comes
// from the manifest named by -f, not from a token.
func transformManifest(p *parse) error {
	p.kindSet = true
	return nil
}

// transformChangeSet handles label/annotate: resource kind at position 2,
// name is the first non-flag token after it, and every remaining non-flag
// token is a change-set candidate. `key=value` upserts, `key-` marks the
// key for removal, anything else is silently ignored.
func transformChangeSet(p *parse) error {
	if len(p.tokens) < 3 || isFlag(p.tokens[2]) {
		return parseErrorf("%s requires a resource type", p.cmd.Action)
	}
	kind, ok := cluster.ParseKind(p.tokens[2])
	if !ok {
		return parseErrorf("unknown resource type %q", p.tokens[2])
	}
	p.cmd.Kind = kind
	p.kindSet = true

	changes := map[string]*string{}
	kept := p.tokens[:2:2]
	for i := 3; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		if isFlag(tok) {
			kept = append(kept, tok)
			if consumesValue(tok) && i+1 < len(p.tokens) && !isFlag(p.tokens[i+1]) {
				i++
				kept = append(kept, p.tokens[i])
			}
			continue
		}
		if p.cmd.Name == "" {
			p.cmd.Name = tok
			continue
		}
		if key, value, found := strings.Cut(tok, "="); found {
			if key != "" {
				v := value
				changes[key] = &v
			}
			continue
		}
		if strings.HasSuffix(tok, "-") && len(tok) > 1 {
			changes[strings.TrimSuffix(tok, "-")] = nil
		}
		// Tokens matching neither pattern are dropped.
	}
	p.cmd.ChangeSet = changes
	p.nameSet = true
	p.tokens = kept
	return nil
}
