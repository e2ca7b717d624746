package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Params(t *testing.T) {
	p, err := Compile("content/{collection}/{?date}/{slug}.{ext:md|mdx}")
	require.NoError(t, err)

	params := p.Params()
	require.Len(t, params, 4)
	assert.Equal(t, Param{Name: "collection", Kind: KindRequired, Pos: 0}, params[0])
	assert.Equal(t, Param{Name: "date", Kind: KindOptional, Pos: 1}, params[1])
	assert.Equal(t, Param{Name: "slug", Kind: KindRequired, Pos: 2}, params[2])
	assert.Equal(t, Param{Name: "ext", Kind: KindConstrained, Pos: 3}, params[3])
	assert.Equal(t, []string{"collection", "date", "slug", "ext"}, p.ParamNames())
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"unclosed placeholder", "posts/{slug"},
		{"unmatched close", "posts/}slug"},
		{"empty name", "posts/{}"},
		{"invalid name", "posts/{my-slug}"},
		{"leading digit", "posts/{1slug}"},
		{"empty constraint", "posts/{slug:}"},
		{"constraint on optional", "posts/{?date:\\d+}"},
		{"constraint on splat", "posts/{...rest:\\d+}"},
		{"bad constraint regex", "posts/{num:[}.md"},
		{"duplicate name", "{a}/{a}.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			var serr *SyntaxError
			require.Error(t, err)
			assert.True(t, errors.As(err, &serr), "want *SyntaxError, got %T: %v", err, err)
		})
	}
}

func TestCompile_Ambiguous(t *testing.T) {
	tests := []string{
		"posts/{a}{b}.md",
		"posts/{a}{?b}.md",
		"posts/{a}{...b}",
		"{...a}{b}",
	}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := Compile(raw)
			var aerr *AmbiguousError
			require.Error(t, err)
			assert.True(t, errors.As(err, &aerr), "want *AmbiguousError, got %T: %v", err, err)
		})
	}

	// A constrained parameter bounds its own capture, so adjacency is fine.
	_, err := Compile("TASK-{num:\\d+}{suffix}.md")
	assert.NoError(t, err)
}

func TestMatch_Required(t *testing.T) {
	p := MustCompile("posts/{slug}.md")

	params, err := p.Match("posts/hello.md")
	require.NoError(t, err)
	assert.Equal(t, Params{"slug": "hello"}, params)

	_, err = p.Match("posts/a/b.md")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = p.Match("posts/.md")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMatch_OptionalAbsence(t *testing.T) {
	p := MustCompile("posts/{?date}/{slug}.md")

	params, err := p.Match("posts/2024-01-01/x.md")
	require.NoError(t, err)
	assert.Equal(t, Params{"date": "2024-01-01", "slug": "x"}, params)

	params, err = p.Match("posts/x.md")
	require.NoError(t, err)
	assert.Equal(t, Params{"slug": "x"}, params)
	_, hasDate := params["date"]
	assert.False(t, hasDate, "absent optional must omit its key")
}

func TestMatch_Splat(t *testing.T) {
	p := MustCompile("content/{...rest}")

	params, err := p.Match("content/a/b/c.md")
	require.NoError(t, err)
	assert.Equal(t, Params{"rest": "a/b/c.md"}, params)

	params, err = p.Match("content/")
	require.NoError(t, err)
	assert.Equal(t, Params{"rest": ""}, params)
}

func TestMatch_Constrained(t *testing.T) {
	p := MustCompile("TASK-{num:\\d+}-{slug}.md")

	params, err := p.Match("TASK-003-fix-bug.md")
	require.NoError(t, err)
	assert.Equal(t, Params{"num": "003", "slug": "fix-bug"}, params)

	_, err = p.Match("TASK-abc-fix-bug.md")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMatch_ConstraintWithBraces(t *testing.T) {
	p := MustCompile("logs/{date:\\d{4}-\\d{2}-\\d{2}}.log")

	params, err := p.Match("logs/2024-06-30.log")
	require.NoError(t, err)
	assert.Equal(t, Params{"date": "2024-06-30"}, params)

	_, err = p.Match("logs/24-06-30.log")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestBuild(t *testing.T) {
	p := MustCompile("posts/{?date}/{slug}.md")

	id, err := p.Build(map[string]string{"date": "2024-01-01", "slug": "x"})
	require.NoError(t, err)
	assert.Equal(t, "posts/2024-01-01/x.md", id)

	id, err = p.Build(map[string]string{"slug": "x"})
	require.NoError(t, err)
	assert.Equal(t, "posts/x.md", id)
}

func TestBuild_MissingParameter(t *testing.T) {
	p := MustCompile("posts/{slug}.md")

	_, err := p.Build(nil)
	var merr *MissingParameterError
	require.Error(t, err)
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "slug", merr.Name)
}

func TestBuild_RejectsNonRoundTrippableValues(t *testing.T) {
	var cerr *ConstraintError

	p := MustCompile("posts/{slug}.md")
	_, err := p.Build(map[string]string{"slug": "a/b"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &cerr))

	p = MustCompile("TASK-{num:\\d+}.md")
	_, err = p.Build(map[string]string{"num": "abc"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &cerr))
}

// Round trip: for any params satisfying the pattern, Match(Build(params))
// must return the same params.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		pattern string
		params  map[string]string
	}{
		{"posts/{slug}.md", map[string]string{"slug": "hello"}},
		{"posts/{?date}/{slug}.md", map[string]string{"date": "2024-01-01", "slug": "x"}},
		{"posts/{?date}/{slug}.md", map[string]string{"slug": "x"}},
		{"content/{...rest}", map[string]string{"rest": "a/b/c.md"}},
		{"TASK-{num:\\d+}-{slug}.md", map[string]string{"num": "003", "slug": "fix-bug"}},
		{"{collection}/{?lang}/{slug}.md", map[string]string{"collection": "docs", "slug": "intro"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p := MustCompile(tt.pattern)

			id, err := p.Build(tt.params)
			require.NoError(t, err)

			got, err := p.Match(id)
			require.NoError(t, err)
			assert.Equal(t, Params(tt.params), got)
		})
	}
}
