package parser

import "strings"

// flagAliases maps every accepted flag spelling to its canonical name.
var flagAliases = map[string]string{
	"-n":               "namespace",
	"--namespace":      "namespace",
	"-o":               "output",
	"--output":         "output",
	"-l":               "selector",
	"--selector":       "selector",
	"-f":               "filename",
	"--filename":       "filename",
	"-A":               "all-namespaces",
	"--all-namespaces": "all-namespaces",
	"-c":               "container",
	"--container":      "container",
	"--tail":           "tail",
	"--overwrite":      "overwrite",
}

// valueFlags is the closed list of flags that consume the following token
// as their value; everything else is boolean.
var valueFlags = map[string]bool{
	"namespace": true,
	"output":    true,
	"selector":  true,
	"filename":  true,
	"container": true,
	"tail":      true,
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "-") && tok != "-" && tok != "--"
}

// canonicalFlag resolves a flag token (without any inline value) to its
// canonical name. Unknown flags keep their dash-trimmed spelling and are
// treated as boolean.
func canonicalFlag(tok string) (name string, known bool) {
	if c, ok := flagAliases[tok]; ok {
		return c, true
	}
	return strings.TrimLeft(tok, "-"), false
}

// extractFlags splits the token stream into flags and positional tokens.
// Both `--flag value` and `--flag=value` spellings are accepted. A
// value-required flag with no following value, or whose next token is
// itself a flag, is a ParseError.
func extractFlags(tokens []string) (flags map[string]string, positional []string, err error) {
	flags = map[string]string{}
	positional = make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isFlag(tok) {
			positional = append(positional, tok)
			continue
		}
		spelling, inline, hasInline := strings.Cut(tok, "=")
		name, _ := canonicalFlag(spelling)
		if !valueFlags[name] {
			if hasInline {
				flags[name] = inline
			} else {
				flags[name] = "true"
			}
			continue
		}
		if hasInline {
			flags[name] = inline
			continue
		}
		if i+1 >= len(tokens) || isFlag(tokens[i+1]) {
			return nil, nil, parseErrorf("flag %s requires a value", spelling)
		}
		i++
		flags[name] = tokens[i]
	}
	return flags, positional, nil
}

// consumesValue reports whether a flag token will consume the next token
// as its value. Used by transformers that scan token streams before the
// generic flag pass.
func consumesValue(tok string) bool {
	spelling, _, hasInline := strings.Cut(tok, "=")
	name, _ := canonicalFlag(spelling)
	return valueFlags[name] && !hasInline
}
