package resolver

import (
	"context"
	"strings"

	"github.com/djgrant/piq/facet"
	"github.com/djgrant/piq/store"
)

// Body resolves the full-content facet of an item. Unlike Meta it always
// pays for a complete read — that is the point of keeping it behind the
// filter phase.
//
// Declared fields:
//
//	raw      the item's entire contents, frontmatter included
//	content  the contents after the frontmatter block
//	excerpt  the first paragraph of content
type Body struct {
	store store.ContentStore
}

// BodyFieldNames lists the fields the frontmatter Body resolver declares.
var BodyFieldNames = []string{"raw", "content", "excerpt"}

// NewBody creates a Body resolver over the given store.
func NewBody(st store.ContentStore) *Body {
	return &Body{store: st}
}

// BodyFields returns the declared field set.
func (b *Body) BodyFields() []string { return BodyFieldNames }

// ResolveBody reads the whole item and returns the requested fields, or all
// declared fields when fields is nil.
func (b *Body) ResolveBody(ctx context.Context, id string, fields []string) (facet.Document, error) {
	obj, err := b.store.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := store.ReadAll(obj)
	if err != nil {
		return nil, err
	}

	// The scan sees the full object, so fmOpen only arises for a genuinely
	// unclosed block.
	fm, state := scanFrontmatter(data, true)
	if state == fmOpen {
		return nil, facet.NewMalformedError(id, "body", "frontmatter fence opened but never closed", nil)
	}

	content := string(data[fm.bodyStart:])
	doc := facet.Document{
		"raw":     string(data),
		"content": content,
		"excerpt": excerpt(content),
	}

	if fields != nil {
		return doc.Pick(fields), nil
	}
	return doc, nil
}

// excerpt returns the first non-empty paragraph of content.
func excerpt(content string) string {
	for para := range strings.SplitSeq(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n") {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
