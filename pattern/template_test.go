package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Wildcards(t *testing.T) {
	p := MustCompile("posts/{year}/{slug}.md")

	tmpl, err := p.Template(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/*/*.md"}, tmpl.Globs())
	assert.Equal(t, "posts/", tmpl.LiteralPrefix())

	assert.True(t, tmpl.Matches("posts/2024/hello.md"))
	assert.False(t, tmpl.Matches("posts/hello.md"))
	assert.False(t, tmpl.Matches("drafts/2024/hello.md"))

	_, exact := tmpl.Exact()
	assert.False(t, exact)
}

func TestTemplate_ConstraintSubstitution(t *testing.T) {
	p := MustCompile("posts/{year}/{slug}.md")

	tmpl, err := p.Template(map[string]string{"year": "2024"})
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/2024/*.md"}, tmpl.Globs())
	assert.Equal(t, "posts/2024/", tmpl.LiteralPrefix())

	assert.True(t, tmpl.Matches("posts/2024/hello.md"))
	assert.False(t, tmpl.Matches("posts/2023/hello.md"))
}

func TestTemplate_FullyPinned(t *testing.T) {
	p := MustCompile("posts/{year}/{slug}.md")

	tmpl, err := p.Template(map[string]string{"year": "2024", "slug": "hello"})
	require.NoError(t, err)

	exact, ok := tmpl.Exact()
	require.True(t, ok)
	assert.Equal(t, "posts/2024/hello.md", exact)
}

func TestTemplate_OptionalAlternation(t *testing.T) {
	p := MustCompile("posts/{?date}/{slug}.md")

	tmpl, err := p.Template(nil)
	require.NoError(t, err)
	// Absent and present forms are distinct alternatives.
	assert.ElementsMatch(t, []string{"posts/*.md", "posts/*/*.md"}, tmpl.Globs())

	assert.True(t, tmpl.Matches("posts/x.md"))
	assert.True(t, tmpl.Matches("posts/2024-01-01/x.md"))
	assert.False(t, tmpl.Matches("posts/a/b/x.md"))
}

func TestTemplate_Splat(t *testing.T) {
	p := MustCompile("content/{...rest}")

	tmpl, err := p.Template(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"content/**"}, tmpl.Globs())
	assert.True(t, tmpl.Matches("content/a/b/c.md"))
	assert.Equal(t, "content/", tmpl.LiteralPrefix())
}

func TestTemplate_ConstrainedValidation(t *testing.T) {
	p := MustCompile("TASK-{num:\\d+}-{slug}.md")

	tmpl, err := p.Template(nil)
	require.NoError(t, err)
	assert.True(t, tmpl.Matches("TASK-003-fix-bug.md"))
	assert.False(t, tmpl.Matches("TASK-abc-fix-bug.md"))
}

func TestTemplate_UnknownConstraint(t *testing.T) {
	p := MustCompile("posts/{slug}.md")

	_, err := p.Template(map[string]string{"nope": "x"})
	assert.Error(t, err)
}
