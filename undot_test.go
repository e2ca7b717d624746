package piq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djgrant/piq/facet"
)

func mustPaths(t *testing.T, raws ...string) []selPath {
	t.Helper()
	out := make([]selPath, 0, len(raws))
	for _, raw := range raws {
		p, err := parseSelPath(raw)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestParseSelPath(t *testing.T) {
	p, err := parseSelPath("meta.title")
	require.NoError(t, err)
	assert.Equal(t, selPath{raw: "meta.title", ns: "meta", field: "title"}, p)

	p, err = parseSelPath("params.*")
	require.NoError(t, err)
	assert.True(t, p.wildcard)

	for _, raw := range []string{"title", "meta.", "meta.a.b", "header.title"} {
		_, err := parseSelPath(raw)
		var sel *SelectionError
		assert.ErrorAs(t, err, &sel, raw)
	}
}

func TestExpandPaths(t *testing.T) {
	row := &itemRow{
		meta:    facet.Document{"title": "T", "status": "S"},
		hasMeta: true,
	}

	t.Run("WildcardSortedFields", func(t *testing.T) {
		got := expandPaths(mustPaths(t, "meta.*"), row)
		assert.Equal(t, mustPaths(t, "meta.status", "meta.title"), got)
	})

	t.Run("AbsentNamespaceExpandsToNothing", func(t *testing.T) {
		got := expandPaths(mustPaths(t, "body.*", "meta.title"), row)
		assert.Equal(t, mustPaths(t, "meta.title"), got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := expandPaths(mustPaths(t, "meta.*", "params.*"), row)
		twice := expandPaths(once, row)
		assert.Equal(t, once, twice)
	})
}

func TestFlatten(t *testing.T) {
	row := &itemRow{
		params:    facet.Document{"slug": "alpha"},
		meta:      facet.Document{"title": "Alpha", "slug": "alpha-meta"},
		hasParams: true,
		hasMeta:   true,
	}

	t.Run("KeyedByFinalSegment", func(t *testing.T) {
		out, err := flatten(row, mustPaths(t, "params.slug", "meta.title"))
		require.NoError(t, err)
		assert.Equal(t, Row{"slug": "alpha", "title": "Alpha"}, out)
	})

	t.Run("MissingFieldFlattensToNil", func(t *testing.T) {
		out, err := flatten(row, mustPaths(t, "meta.status"))
		require.NoError(t, err)
		assert.Equal(t, Row{"status": nil}, out)
	})

	t.Run("WildcardIntroducedCollision", func(t *testing.T) {
		_, err := flatten(row, mustPaths(t, "params.slug", "meta.*"))
		var col *CollisionError
		require.ErrorAs(t, err, &col)
		assert.Equal(t, "slug", col.Key)
	})
}

func TestFlattenAlias(t *testing.T) {
	row := &itemRow{
		params:    facet.Document{"slug": "alpha"},
		meta:      facet.Document{"title": "Alpha", "slug": "alpha-meta"},
		hasParams: true,
		hasMeta:   true,
	}

	t.Run("KeyedByAlias", func(t *testing.T) {
		out, err := flattenAlias(row, map[string]selPath{
			"a": mustPaths(t, "params.slug")[0],
			"b": mustPaths(t, "meta.slug")[0],
		})
		require.NoError(t, err)
		assert.Equal(t, Row{"a": "alpha", "b": "alpha-meta"}, out)
	})

	t.Run("WildcardDegradesToBareNames", func(t *testing.T) {
		out, err := flattenAlias(row, map[string]selPath{
			"everything": mustPaths(t, "meta.*")[0],
		})
		require.NoError(t, err)
		assert.Equal(t, Row{"title": "Alpha", "slug": "alpha-meta"}, out)
	})

	t.Run("DegradedWildcardCollision", func(t *testing.T) {
		_, err := flattenAlias(row, map[string]selPath{
			"slug": mustPaths(t, "params.slug")[0],
			"rest": mustPaths(t, "meta.*")[0],
		})
		var col *CollisionError
		require.ErrorAs(t, err, &col)
	})
}
