// Package minio provides a store.ContentStore backed by MinIO or any
// S3-compatible object storage (Ceph, SeaweedFS, Garage).
//
// It uses the official MinIO Go client, which keeps the backend air-gap
// friendly: no AWS credential chain is required.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	st := miniostore.NewStore(client, "content", "blog/")
//	search := resolver.NewSearch(st, pattern.MustCompile("posts/{slug}.md"))
package minio
