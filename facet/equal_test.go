package facet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil both", nil, nil, true},
		{"nil one", nil, "x", false},
		{"strings", "published", "published", true},
		{"strings differ", "published", "draft", false},
		{"int widths", int32(7), int64(7), true},
		{"int uint", 7, uint8(7), true},
		{"int float", 7, 7.0, true},
		{"floats", 1.5, 1.5, true},
		{"string vs number", "2024", 2024, false},
		{"bools", true, true, true},
		{"bool vs int", true, 1, false},
		{"times", now, now.UTC(), true},
		{"slices", []any{1, "a"}, []any{1, "a"}, true},
		{"slices differ", []any{1, "a"}, []any{1, "b"}, false},
		{"slice lengths", []any{1}, []any{1, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "Equal must be symmetric")
		})
	}
}

func TestDocumentPick(t *testing.T) {
	doc := Document{"title": "Hello", "status": "published", "draft": false}

	got := doc.Pick([]string{"title", "missing"})
	assert.Equal(t, Document{"title": "Hello"}, got)

	_, ok := got["missing"]
	assert.False(t, ok, "absent fields must be omitted, not nil-valued")
}

func TestFieldSet(t *testing.T) {
	s := FieldSet{"title", "status"}
	assert.True(t, s.Contains("title"))
	assert.False(t, s.Contains("body"))
}
