// Package s3 provides a store.ContentStore backed by Amazon S3.
//
// Partial reads map to ranged GetObject requests. For small objects that
// will be read fully anyway (typical content items), WithEagerDownload
// fetches whole objects through the transfer manager at Open instead.
//
//	st, err := s3.New(ctx, "my-bucket", s3.WithPrefix("content/"))
//	search := resolver.NewSearch(st, pattern.MustCompile("posts/{slug}.md"))
package s3
