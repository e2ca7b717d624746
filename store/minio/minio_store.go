package minio

import (
	"context"
	"io"
	"iter"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/djgrant/piq/store"
)

// Store implements store.ContentStore for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a MinIO content store.
// rootPrefix is prepended to all object names (e.g. "blog/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open stats the object and returns a handle that serves ReadAt through
// ranged GetObject requests, so bounded partial reads stay partial on the
// wire.
func (s *Store) Open(ctx context.Context, name string) (store.Object, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return &minioObject{
		ctx:    ctx,
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

// List lazily yields object names under prefix, with the store's root prefix
// stripped. MinIO listings arrive in lexical order.
func (s *Store) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
			Prefix:    s.key(prefix),
			Recursive: true,
		}) {
			if obj.Err != nil {
				yield("", obj.Err)
				return
			}
			name := strings.TrimPrefix(obj.Key, s.prefix)
			name = strings.TrimPrefix(name, "/")
			if name == "" {
				continue
			}
			if !yield(name, nil) {
				return
			}
		}
	}
}

// Stat reports whether an object exists.
func (s *Store) Stat(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NotFound"
}

type minioObject struct {
	ctx    context.Context
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (o *minioObject) ReadAt(p []byte, off int64) (int, error) {
	if off >= o.size {
		return 0, io.EOF
	}

	end := off + int64(len(p)) - 1
	if end >= o.size {
		end = o.size - 1
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, err
	}

	obj, err := o.client.GetObject(o.ctx, o.bucket, o.key, opts)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, p[:end-off+1])
	if err == nil && int64(n) < int64(len(p)) {
		return n, io.EOF
	}
	return n, err
}

func (o *minioObject) Close() error { return nil }

func (o *minioObject) Size() int64 { return o.size }
