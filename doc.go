// Package piq provides a cost-tiered query engine over collections of
// content items whose identifiers encode structured parameters.
//
// A query narrows a collection in layers, each layer strictly cheaper than
// the next: scan constraints prune by identifier structure without reading
// any content, filter constraints prune by lightweight metadata, and only
// surviving items pay for the facets the selection actually references.
//
// # Quick Start
//
//	ctx := context.Background()
//	st := store.NewLocalStore("./content")
//	pat := pattern.MustCompile("posts/{year}/{slug}.md")
//
//	eng := piq.New(
//	    resolver.NewSearch(st, pat),
//	    piq.WithMetaResolver(resolver.NewMeta(st, resolver.WithMetaFields("title", "status"))),
//	    piq.WithBodyResolver(resolver.NewBody(st)),
//	)
//
//	rows, _ := eng.Query().
//	    Scan(map[string]string{"year": "2024"}).
//	    Filter(map[string]any{"status": "published"}).
//	    Select("params.slug", "meta.title").
//	    Exec(ctx)
//
// # Streaming
//
// Stream resolves items lazily under a caller-sized concurrency bound, so a
// consumer that stops early never pays for the rest of the collection:
//
//	for row, err := range q.Stream(ctx, 4) {
//	    if err != nil { break }
//	    if enough(row) { break } // Early termination
//	    process(row)
//	}
//
// # Resolvers
//
// The engine is assembled from three pluggable contracts: a SearchResolver
// enumerates identifiers and derives parameters from them, a MetaResolver
// resolves small declared metadata fields, and a BodyResolver resolves full
// content fields. Reference implementations over a store.ContentStore live
// in the resolver package; any conforming implementation is interchangeable.
// There is no registry — callers hold resolver instances and inject them.
//
// # Key Features
//
//   - Placeholder patterns ({name}, {?name}, {...name}, {name:regex})
//   - Enumeration without content reads, pinned patterns collapse to a stat
//   - Strict-equality metadata filtering with a single resolution per item
//   - Namespaced selection with wildcards, flattened with collision checks
//   - Eager execution assembled in enumeration order, streaming in
//     completion order within a bounded window
//   - Pluggable storage (local mmap, memory, MinIO, S3) and metadata
//     backends (frontmatter, DynamoDB)
package piq
