package pattern

import "strings"

// Build substitutes parameter values into the pattern, producing an
// identifier that Match accepts with the same values.
//
// An unset required or constrained parameter fails with
// *MissingParameterError. A value that would not survive the round trip —
// a separator inside a single-segment parameter, or a constraint violation —
// fails with *ConstraintError. An absent optional simply omits its governing
// separator; an absent splat substitutes the empty remainder.
func (p *Pattern) Build(params map[string]string) (string, error) {
	var sb strings.Builder

	toks := p.tokens
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case tokLiteral:
			lit := t.text
			if i+1 < len(toks) && toks[i+1].kind == tokOptional && strings.HasSuffix(lit, "/") {
				sb.WriteString(strings.TrimSuffix(lit, "/"))
				if val, ok := present(params, toks[i+1].text); ok {
					if err := p.checkSegment(toks[i+1].text, val); err != nil {
						return "", err
					}
					sb.WriteString("/")
					sb.WriteString(val)
				}
				i++
				continue
			}
			sb.WriteString(lit)
		case tokRequired, tokConstrained:
			val, ok := present(params, t.text)
			if !ok {
				return "", &MissingParameterError{Pattern: p.raw, Name: t.text}
			}
			if err := p.checkSegment(t.text, val); err != nil {
				return "", err
			}
			sb.WriteString(val)
		case tokSplat:
			sb.WriteString(params[t.text])
		case tokOptional:
			val, ok := present(params, t.text)
			if !ok {
				// Absent: drop the following separator too.
				if i+1 < len(toks) && toks[i+1].kind == tokLiteral && strings.HasPrefix(toks[i+1].text, "/") {
					sb.WriteString(strings.TrimPrefix(toks[i+1].text, "/"))
					i++
				}
				continue
			}
			if err := p.checkSegment(t.text, val); err != nil {
				return "", err
			}
			sb.WriteString(val)
		}
	}

	return sb.String(), nil
}

// checkSegment rejects values that would not round-trip through Match.
func (p *Pattern) checkSegment(name, val string) error {
	if strings.ContainsRune(val, '/') {
		return &ConstraintError{Pattern: p.raw, Name: name, Value: val}
	}
	if re, ok := p.constraintRes[name]; ok && !re.MatchString(val) {
		return &ConstraintError{Pattern: p.raw, Name: name, Value: val}
	}
	return nil
}

// present treats an empty value the same as an unset one: required
// parameters must capture non-empty text, and an "empty optional" has no
// representable form.
func present(params map[string]string, name string) (string, bool) {
	val, ok := params[name]
	if !ok || val == "" {
		return "", false
	}
	return val, true
}
