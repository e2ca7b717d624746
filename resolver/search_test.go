package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djgrant/piq/pattern"
	"github.com/djgrant/piq/store"
)

func fixtureStore() *store.MemoryStore {
	st := store.NewMemoryStore()
	st.PutString("posts/2023/intro.md", "intro")
	st.PutString("posts/2024/alpha.md", "alpha")
	st.PutString("posts/2024/beta.md", "beta")
	st.PutString("posts/readme.txt", "not an item")
	st.PutString("notes/misc.md", "misc")
	return st
}

func TestSearch_Enumerate(t *testing.T) {
	ctx := context.Background()
	s := NewSearch(fixtureStore(), pattern.MustCompile("posts/{year}/{slug}.md"))

	ids, err := s.Enumerate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/2023/intro.md", "posts/2024/alpha.md", "posts/2024/beta.md"}, ids)
}

func TestSearch_EnumerateConstrained(t *testing.T) {
	ctx := context.Background()
	s := NewSearch(fixtureStore(), pattern.MustCompile("posts/{year}/{slug}.md"))

	ids, err := s.Enumerate(ctx, map[string]string{"year": "2024"})
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/2024/alpha.md", "posts/2024/beta.md"}, ids)
}

func TestSearch_EnumerateFullyPinned(t *testing.T) {
	ctx := context.Background()
	s := NewSearch(fixtureStore(), pattern.MustCompile("posts/{year}/{slug}.md"))

	ids, err := s.Enumerate(ctx, map[string]string{"year": "2024", "slug": "alpha"})
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/2024/alpha.md"}, ids)

	ids, err = s.Enumerate(ctx, map[string]string{"year": "2024", "slug": "missing"})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSearch_EnumerateSeqEarlyStop(t *testing.T) {
	ctx := context.Background()
	s := NewSearch(fixtureStore(), pattern.MustCompile("posts/{year}/{slug}.md"))

	var got []string
	for id, err := range s.EnumerateSeq(ctx, nil) {
		require.NoError(t, err)
		got = append(got, id)
		if len(got) == 1 {
			break
		}
	}
	assert.Equal(t, []string{"posts/2023/intro.md"}, got)
}

func TestSearch_ExtractParams(t *testing.T) {
	s := NewSearch(fixtureStore(), pattern.MustCompile("posts/{year}/{slug}.md"))

	params, err := s.ExtractParams("posts/2024/alpha.md")
	require.NoError(t, err)
	assert.Equal(t, pattern.Params{"year": "2024", "slug": "alpha"}, params)

	_, err = s.ExtractParams("posts/readme.txt")
	assert.ErrorIs(t, err, pattern.ErrNoMatch)
}

func TestSearch_BuildID(t *testing.T) {
	s := NewSearch(fixtureStore(), pattern.MustCompile("posts/{year}/{slug}.md"))

	id, err := s.BuildID(map[string]string{"year": "2024", "slug": "gamma"})
	require.NoError(t, err)
	assert.Equal(t, "posts/2024/gamma.md", id)
}

func TestSearch_WithRoot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.PutString("blog/posts/a.md", "a")
	st.PutString("other/posts/b.md", "b")

	s := NewSearch(st, pattern.MustCompile("posts/{slug}.md"), WithRoot("blog"))

	ids, err := s.Enumerate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"blog/posts/a.md"}, ids)

	params, err := s.ExtractParams("blog/posts/a.md")
	require.NoError(t, err)
	assert.Equal(t, pattern.Params{"slug": "a"}, params)

	id, err := s.BuildID(map[string]string{"slug": "c"})
	require.NoError(t, err)
	assert.Equal(t, "blog/posts/c.md", id)
}
