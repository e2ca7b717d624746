package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Template is an enumeration template: the cheap, non-capturing form of a
// pattern used to list candidate identifiers without extracting parameters.
//
// Unpinned parameters widen to glob wildcards, pinned parameters substitute
// their constraint value literally, and an unpinned optional becomes an
// alternation between its absent and present forms.
type Template struct {
	globs  []string
	re     *regexp.Regexp
	exact  string
	prefix string
}

// Template synthesizes the enumeration template, applying the given
// constraint values over the pattern's wildcard form. Constraint keys must
// be declared parameter names.
func (p *Pattern) Template(constraints map[string]string) (*Template, error) {
	for k := range constraints {
		if !p.hasParam(k) {
			return nil, fmt.Errorf("pattern %q: unknown constraint parameter %q", p.raw, k)
		}
	}

	globs := []string{""}
	var re strings.Builder
	re.WriteString("^")

	appendAll := func(s string) {
		for i := range globs {
			globs[i] += s
		}
	}

	toks := p.tokens
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case tokLiteral:
			lit := t.text
			if i+1 < len(toks) && toks[i+1].kind == tokOptional && strings.HasSuffix(lit, "/") {
				opt := toks[i+1]
				base := strings.TrimSuffix(lit, "/")
				appendAll(base)
				re.WriteString(regexp.QuoteMeta(base))
				if val, ok := constraints[opt.text]; ok && val != "" {
					appendAll("/" + val)
					re.WriteString(regexp.QuoteMeta("/" + val))
				} else {
					globs = branch(globs, "/*")
					re.WriteString(`(?:/[^/]+)?`)
				}
				i++
				continue
			}
			appendAll(lit)
			re.WriteString(regexp.QuoteMeta(lit))
		case tokRequired, tokConstrained:
			if val, ok := constraints[t.text]; ok && val != "" {
				appendAll(val)
				re.WriteString(regexp.QuoteMeta(val))
			} else {
				appendAll("*")
				if t.kind == tokConstrained {
					re.WriteString(`(?:` + t.constraint + `)`)
				} else {
					re.WriteString(`[^/]+`)
				}
			}
		case tokSplat:
			if val, ok := constraints[t.text]; ok {
				appendAll(val)
				re.WriteString(regexp.QuoteMeta(val))
			} else {
				appendAll("**")
				re.WriteString(`.*`)
			}
		case tokOptional:
			folded := i+1 < len(toks) && toks[i+1].kind == tokLiteral && strings.HasPrefix(toks[i+1].text, "/")
			if val, ok := constraints[t.text]; ok && val != "" {
				appendAll(val)
				re.WriteString(regexp.QuoteMeta(val))
			} else if folded {
				globs = branch(globs, "*/")
				re.WriteString(`(?:[^/]+/)?`)
			} else {
				globs = branch(globs, "*")
				re.WriteString(`(?:[^/]+)?`)
			}
			if folded {
				rest := toks[i+1].text
				if _, ok := constraints[t.text]; !ok {
					rest = strings.TrimPrefix(rest, "/")
				}
				appendAll(rest)
				re.WriteString(regexp.QuoteMeta(rest))
				i++
			}
		}
	}

	re.WriteString("$")
	compiled, err := regexp.Compile(re.String())
	if err != nil {
		return nil, fmt.Errorf("pattern %q: cannot compile enumeration regex: %w", p.raw, err)
	}

	tmpl := &Template{globs: globs, re: compiled}
	if len(globs) == 1 && !strings.ContainsRune(globs[0], '*') {
		tmpl.exact = globs[0]
	}
	tmpl.prefix = commonLiteralPrefix(globs)

	return tmpl, nil
}

// branch duplicates every partial glob into an absent and a present form.
func branch(globs []string, present string) []string {
	out := make([]string, 0, len(globs)*2)
	for _, g := range globs {
		out = append(out, g, g+present)
	}
	return out
}

func commonLiteralPrefix(globs []string) string {
	prefix := ""
	for i, g := range globs {
		lit := g
		if idx := strings.IndexRune(g, '*'); idx >= 0 {
			lit = g[:idx]
		}
		if i == 0 {
			prefix = lit
			continue
		}
		for !strings.HasPrefix(lit, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func (p *Pattern) hasParam(name string) bool {
	for _, prm := range p.params {
		if prm.Name == name {
			return true
		}
	}
	return false
}

// Globs returns the template's glob alternatives. Optionals contribute one
// absent and one present alternative each.
func (t *Template) Globs() []string {
	out := make([]string, len(t.globs))
	copy(out, t.globs)
	return out
}

// Matches reports whether a candidate identifier satisfies the template.
// This is the non-capturing validation pass used during enumeration.
func (t *Template) Matches(id string) bool {
	return t.re.MatchString(id)
}

// Exact returns the single identifier the template denotes when every
// parameter is pinned by a constraint value, and whether that is the case.
// Enumeration can then check existence directly instead of listing.
func (t *Template) Exact() (string, bool) {
	return t.exact, t.exact != ""
}

// LiteralPrefix returns the longest literal prefix shared by all of the
// template's alternatives, usable for pruning a listing walk.
func (t *Template) LiteralPrefix() string {
	return t.prefix
}
