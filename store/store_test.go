package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	st.PutString("posts/a.md", "alpha")
	st.PutString("posts/b.md", "bravo")
	st.PutString("drafts/c.md", "charlie")

	obj, err := st.Open(ctx, "posts/a.md")
	require.NoError(t, err)
	defer obj.Close()

	data, err := ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	_, err = st.Open(ctx, "posts/missing.md")
	assert.ErrorIs(t, err, ErrNotFound)

	var names []string
	for name, err := range st.List(ctx, "posts/") {
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"posts/a.md", "posts/b.md"}, names)

	ok, err := st.Stat(ctx, "drafts/c.md")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_ListEarlyStop(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	for _, n := range []string{"a", "b", "c"} {
		st.PutString(n, n)
	}

	var seen int
	for range st.List(ctx, "") {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	mustWrite(t, root, "posts/2024/a.md", "alpha")
	mustWrite(t, root, "posts/2023/b.md", "bravo")
	mustWrite(t, root, "notes/n.md", "note")

	st := NewLocalStore(root)

	obj, err := st.Open(ctx, "posts/2024/a.md")
	require.NoError(t, err)
	defer obj.Close()
	data, err := ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	// Partial read.
	head := make([]byte, 2)
	_, err = obj.ReadAt(head, 0)
	require.NoError(t, err)
	assert.Equal(t, "al", string(head))

	var names []string
	for name, err := range st.List(ctx, "posts/") {
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"posts/2023/b.md", "posts/2024/a.md"}, names)

	ok, err := st.Stat(ctx, "notes/n.md")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Stat(ctx, "notes/missing.md")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStore_ListMissingPrefix(t *testing.T) {
	st := NewLocalStore(t.TempDir())

	for range st.List(context.Background(), "nope/") {
		t.Fatal("expected no entries")
	}
}

func TestCachingStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	inner.PutString("a.md", "alpha")

	st := NewCachingStore(inner, 0)

	obj, err := st.Open(ctx, "a.md")
	require.NoError(t, err)
	data, _ := ReadAll(obj)
	assert.Equal(t, "alpha", string(data))
	require.NoError(t, obj.Close())

	// Mutating the inner store must not affect the cached copy.
	inner.PutString("a.md", "changed")
	obj, err = st.Open(ctx, "a.md")
	require.NoError(t, err)
	data, _ = ReadAll(obj)
	assert.Equal(t, "alpha", string(data))
	require.NoError(t, obj.Close())

	st.Invalidate("a.md")
	obj, err = st.Open(ctx, "a.md")
	require.NoError(t, err)
	data, _ = ReadAll(obj)
	assert.Equal(t, "changed", string(data))
	require.NoError(t, obj.Close())
}

func TestRateLimitedStore_Unlimited(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	inner.PutString("a.md", "alpha")

	st := NewRateLimitedStore(inner, 0)
	obj, err := st.Open(ctx, "a.md")
	require.NoError(t, err)
	defer obj.Close()

	data, err := ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
}

func mustWrite(t *testing.T, root, name, data string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
}
