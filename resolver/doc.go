// Package resolver provides the reference resolvers the query engine
// consumes: enumeration over a content store via a compiled pattern, and
// frontmatter-based meta/body resolution.
//
// Any conforming implementation is interchangeable — these are the
// store-backed ones. See the dynamo subpackage for a network-backed
// MetaResolver.
package resolver
