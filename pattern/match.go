package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// matcherExpr synthesizes the anchored matcher regex from the token stream.
//
// Literal runs are escaped. A required parameter becomes a named capture
// excluding the path separator, a constrained parameter captures its inline
// regex, and a splat captures across separators. An optional parameter folds
// its governing separator into a single optional non-capturing group so that
// both presence and absence validate.
func (p *Pattern) matcherExpr() string {
	var sb strings.Builder
	sb.WriteString("^")

	toks := p.tokens
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case tokLiteral:
			lit := t.text
			// Fold a trailing separator into the optional group that follows.
			if i+1 < len(toks) && toks[i+1].kind == tokOptional && strings.HasSuffix(lit, "/") {
				sb.WriteString(regexp.QuoteMeta(strings.TrimSuffix(lit, "/")))
				sb.WriteString(`(?:/(?P<` + toks[i+1].text + `>[^/]+))?`)
				i++
				continue
			}
			sb.WriteString(regexp.QuoteMeta(lit))
		case tokRequired:
			sb.WriteString(`(?P<` + t.text + `>[^/]+)`)
		case tokConstrained:
			sb.WriteString(`(?P<` + t.text + `>` + t.constraint + `)`)
		case tokSplat:
			sb.WriteString(`(?P<` + t.text + `>.*)`)
		case tokOptional:
			// No preceding separator was available; fold the following one.
			if i+1 < len(toks) && toks[i+1].kind == tokLiteral && strings.HasPrefix(toks[i+1].text, "/") {
				sb.WriteString(`(?:(?P<` + t.text + `>[^/]+)/)?`)
				sb.WriteString(regexp.QuoteMeta(strings.TrimPrefix(toks[i+1].text, "/")))
				i++
				continue
			}
			sb.WriteString(`(?:(?P<` + t.text + `>[^/]+))?`)
		}
	}

	sb.WriteString("$")
	return sb.String()
}

// Match extracts parameter values from an identifier.
//
// It returns ErrNoMatch when the identifier does not satisfy the pattern.
// Absent optional parameters are omitted from the result. An empty capture
// for a required or constrained parameter is impossible by regex
// construction; if one is observed anyway it surfaces as ErrInternalFault
// rather than being dropped silently.
func (p *Pattern) Match(id string) (Params, error) {
	m := p.re.FindStringSubmatch(id)
	if m == nil {
		return nil, fmt.Errorf("%w: %q against %q", ErrNoMatch, id, p.raw)
	}

	out := make(Params, len(p.params))
	for _, prm := range p.params {
		idx := p.re.SubexpIndex(prm.Name)
		if idx < 0 || idx >= len(m) {
			return nil, fmt.Errorf("%w: no capture group for parameter %q", ErrInternalFault, prm.Name)
		}
		val := m[idx]
		if val == "" {
			switch prm.Kind {
			case KindOptional:
				continue // absent, omit the key entirely
			case KindSplat:
				out[prm.Name] = ""
				continue
			default:
				return nil, fmt.Errorf("%w: empty capture for required parameter %q", ErrInternalFault, prm.Name)
			}
		}
		out[prm.Name] = val
	}

	return out, nil
}

// Matches reports whether the identifier satisfies the pattern without
// extracting parameter values.
func (p *Pattern) Matches(id string) bool {
	return p.re.MatchString(id)
}
