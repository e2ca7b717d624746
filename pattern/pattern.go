package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a pattern parameter.
type Kind uint8

const (
	// KindRequired matches exactly one non-empty path segment.
	KindRequired Kind = iota
	// KindOptional matches one segment or nothing; an absent optional also
	// removes its governing separator.
	KindOptional
	// KindSplat matches the remainder of the identifier, separators included.
	KindSplat
	// KindConstrained matches a required value against an inline regex.
	KindConstrained
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindOptional:
		return "optional"
	case KindSplat:
		return "splat"
	case KindConstrained:
		return "constrained"
	default:
		return "unknown"
	}
}

// Param describes one placeholder in compile order.
type Param struct {
	Name string
	Kind Kind
	// Pos is the parameter's ordinal among the pattern's parameters.
	Pos int
}

// Params maps parameter names to captured values. Absent optionals are
// omitted rather than present with an empty value.
type Params map[string]string

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokRequired
	tokOptional
	tokSplat
	tokConstrained
)

type token struct {
	kind       tokenKind
	text       string // literal text, or parameter name
	constraint string // tokConstrained only
}

func (t token) isParam() bool { return t.kind != tokLiteral }

// unconstrained reports whether extraction of this parameter relies solely on
// the surrounding literals for its boundary.
func (t token) unconstrained() bool {
	return t.kind == tokRequired || t.kind == tokOptional || t.kind == tokSplat
}

// Pattern is a compiled placeholder pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	raw    string
	tokens []token
	params []Param
	re     *regexp.Regexp

	// constraintRes holds anchored constraint regexes keyed by parameter
	// name, used to validate values supplied to Build.
	constraintRes map[string]*regexp.Regexp
}

// Compile parses and compiles a placeholder pattern.
//
// It fails with *SyntaxError on malformed placeholders or duplicate
// parameter names, and with *AmbiguousError when two adjacent unconstrained
// parameters make extraction undecidable.
func Compile(raw string) (*Pattern, error) {
	tokens, err := tokenize(raw)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		raw:           raw,
		tokens:        tokens,
		constraintRes: make(map[string]*regexp.Regexp),
	}

	seen := make(map[string]bool)
	for i, t := range tokens {
		if !t.isParam() {
			continue
		}
		if seen[t.text] {
			return nil, &SyntaxError{Pattern: raw, Pos: i, Reason: fmt.Sprintf("duplicate parameter name %q", t.text)}
		}
		seen[t.text] = true
		p.params = append(p.params, Param{Name: t.text, Kind: paramKind(t.kind), Pos: len(p.params)})

		if t.kind == tokConstrained {
			re, err := regexp.Compile("^(?:" + t.constraint + ")$")
			if err != nil {
				return nil, &SyntaxError{Pattern: raw, Pos: i, Reason: fmt.Sprintf("invalid constraint for %q: %v", t.text, err)}
			}
			p.constraintRes[t.text] = re
		}

		// Adjacent unconstrained parameters have no decidable boundary.
		if i+1 < len(tokens) && tokens[i+1].isParam() && t.unconstrained() && tokens[i+1].unconstrained() {
			return nil, &AmbiguousError{Pattern: raw, Left: t.text, Right: tokens[i+1].text}
		}
	}

	re, err := regexp.Compile(p.matcherExpr())
	if err != nil {
		// Constraints compiled standalone above, so this is almost always an
		// inline group in a constraint interacting badly with anchoring.
		return nil, &SyntaxError{Pattern: raw, Pos: 0, Reason: "cannot compile matcher: " + err.Error()}
	}
	p.re = re

	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for package-level
// pattern variables.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern text.
func (p *Pattern) String() string { return p.raw }

// Params returns the pattern's parameters in compile order.
func (p *Pattern) Params() []Param {
	out := make([]Param, len(p.params))
	copy(out, p.params)
	return out
}

// ParamNames returns the parameter names in compile order.
func (p *Pattern) ParamNames() []string {
	names := make([]string, len(p.params))
	for i, prm := range p.params {
		names[i] = prm.Name
	}
	return names
}

func paramKind(k tokenKind) Kind {
	switch k {
	case tokOptional:
		return KindOptional
	case tokSplat:
		return KindSplat
	case tokConstrained:
		return KindConstrained
	default:
		return KindRequired
	}
}

// tokenize splits the pattern into literal and placeholder tokens.
// Braces inside constraint regexes (e.g. {num:\d{3}}) are balanced by depth.
func tokenize(raw string) ([]token, error) {
	var tokens []token
	var lit strings.Builder

	flushLit := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{kind: tokLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		c := raw[i]
		switch c {
		case '{':
			end, ok := matchBrace(raw, i)
			if !ok {
				return nil, &SyntaxError{Pattern: raw, Pos: i, Reason: "unclosed placeholder"}
			}
			tok, err := parsePlaceholder(raw, i, raw[i+1:end])
			if err != nil {
				return nil, err
			}
			flushLit()
			tokens = append(tokens, tok)
			i = end + 1
		case '}':
			return nil, &SyntaxError{Pattern: raw, Pos: i, Reason: "unmatched '}'"}
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flushLit()

	return tokens, nil
}

// matchBrace returns the index of the '}' closing the '{' at open,
// accounting for nested braces in constraint regexes.
func matchBrace(raw string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		case '\\':
			i++ // skip escaped char inside a constraint
		}
	}
	return 0, false
}

func parsePlaceholder(raw string, pos int, body string) (token, error) {
	kind := tokRequired
	switch {
	case strings.HasPrefix(body, "?"):
		kind = tokOptional
		body = body[1:]
	case strings.HasPrefix(body, "..."):
		kind = tokSplat
		body = body[3:]
	}

	name := body
	constraint := ""
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		if kind != tokRequired {
			return token{}, &SyntaxError{Pattern: raw, Pos: pos, Reason: "constraints are only valid on required parameters"}
		}
		kind = tokConstrained
		name, constraint = body[:idx], body[idx+1:]
		if constraint == "" {
			return token{}, &SyntaxError{Pattern: raw, Pos: pos, Reason: fmt.Sprintf("empty constraint for %q", name)}
		}
	}

	if !validName(name) {
		return token{}, &SyntaxError{Pattern: raw, Pos: pos, Reason: fmt.Sprintf("invalid parameter name %q", name)}
	}

	return token{kind: kind, text: name, constraint: constraint}, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
