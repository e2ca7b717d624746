package resolver

import (
	"context"

	"github.com/djgrant/piq/facet"
	"github.com/djgrant/piq/store"
)

// defaultReadBudget is the initial window for the bounded frontmatter read.
// Most metadata blocks fit well inside it, so filtering rarely touches more
// than the first few KiB of an item.
const defaultReadBudget = 4096

// Meta resolves the metadata facet of an item from its frontmatter block.
type Meta struct {
	store  store.ContentStore
	fields facet.FieldSet
	budget int
}

// MetaOption configures a Meta resolver.
type MetaOption func(*Meta)

// WithMetaFields declares the resolver's field set. Declared fields are
// what filter keys and meta selection paths validate against; undeclared
// resolvers skip that validation.
func WithMetaFields(fields ...string) MetaOption {
	return func(m *Meta) { m.fields = fields }
}

// WithReadBudget sets the initial partial-read window in bytes.
func WithReadBudget(n int) MetaOption {
	return func(m *Meta) { m.budget = n }
}

// NewMeta creates a frontmatter Meta resolver over the given store.
func NewMeta(st store.ContentStore, optFns ...MetaOption) *Meta {
	m := &Meta{store: st, budget: defaultReadBudget}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

// MetaFields returns the declared field set, or nil when undeclared.
func (m *Meta) MetaFields() []string { return m.fields }

// ResolveMeta reads the item's frontmatter and returns the requested fields,
// or all fields when fields is nil. An item without a frontmatter block
// yields an empty document; a block that is opened but never closed fails
// with *facet.MalformedError.
func (m *Meta) ResolveMeta(ctx context.Context, id string, fields []string) (facet.Document, error) {
	obj, err := m.store.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	fm, err := readFrontmatter(obj, m.budget, id)
	if err != nil {
		return nil, err
	}
	doc, err := decodeFrontmatter(fm, id)
	if err != nil {
		return nil, err
	}

	if fields != nil {
		return doc.Pick(fields), nil
	}
	if m.fields != nil {
		return doc.Pick(m.fields), nil
	}
	return doc, nil
}
