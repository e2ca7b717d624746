// Package pattern compiles placeholder path patterns into matchers,
// enumeration templates and identifier builders.
//
// A pattern is literal text interleaved with placeholders:
//
//	{name}        required parameter, matches one path segment
//	{?name}       optional parameter, its governing separator folds away when absent
//	{...name}     splat parameter, matches across path separators
//	{name:regex}  required parameter constrained by an inline regular expression
//
// Compilation is strict: malformed placeholder syntax fails with *SyntaxError,
// and two adjacent unconstrained parameters fail with *AmbiguousError because
// extraction would be undecidable. Both surface at Compile, never at first use.
//
//	p, err := pattern.Compile("posts/{?date}/{slug}.md")
//	params, err := p.Match("posts/2024-01-01/hello.md") // {date: 2024-01-01, slug: hello}
//	id, err := p.Build(pattern.Params{"slug": "hello"})  // "posts/hello.md"
package pattern
