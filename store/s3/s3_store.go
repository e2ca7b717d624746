package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/djgrant/piq/store"
)

// Store implements store.ContentStore for Amazon S3.
type Store struct {
	client *s3.Client
	bucket string
	prefix string

	// eagerBelow: objects at most this many bytes are downloaded whole at
	// Open through the transfer manager. 0 disables eager download.
	eagerBelow int64
	downloader *manager.Downloader
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix prepends a root prefix to all object keys (e.g. "content/").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithEagerDownload downloads objects up to maxBytes whole at Open instead
// of serving ranged reads. Content items are usually small enough that one
// download beats several round trips.
func WithEagerDownload(maxBytes int64) Option {
	return func(s *Store) { s.eagerBelow = maxBytes }
}

// New creates a Store using the default AWS configuration chain.
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewStore(s3.NewFromConfig(cfg), bucket, optFns...), nil
}

// NewStore creates a Store from an existing S3 client.
func NewStore(client *s3.Client, bucket string, optFns ...Option) *Store {
	s := &Store{client: client, bucket: bucket}
	for _, fn := range optFns {
		fn(s)
	}
	s.downloader = manager.NewDownloader(client)
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open verifies the object and returns a handle. Depending on size and the
// eager-download setting, reads are served from memory or as ranged gets.
func (s *Store) Open(ctx context.Context, name string) (store.Object, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	size := aws.ToInt64(head.ContentLength)

	if s.eagerBelow > 0 && size <= s.eagerBelow {
		buf := manager.NewWriteAtBuffer(make([]byte, 0, size))
		if _, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}); err != nil {
			return nil, err
		}
		return store.NewBytesObject(buf.Bytes()), nil
	}

	return &s3Object{
		ctx:    ctx,
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   size,
	}, nil
}

// List lazily yields object names under prefix, root prefix stripped.
// S3 returns keys in lexical (UTF-8 binary) order.
func (s *Store) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
			Bucket: aws.String(s.bucket),
			Prefix: aws.String(s.key(prefix)),
		})

		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield("", err)
				return
			}
			for _, obj := range page.Contents {
				name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
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
}

// Stat reports whether an object exists.
func (s *Store) Stat(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}

type s3Object struct {
	ctx    context.Context
	client *s3.Client
	bucket string
	key    string
	size   int64
}

func (o *s3Object) ReadAt(p []byte, off int64) (int, error) {
	if off >= o.size {
		return 0, io.EOF
	}

	end := off + int64(len(p)) - 1
	if end >= o.size {
		end = o.size - 1
	}

	resp, err := o.client.GetObject(o.ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.ReadFull(resp.Body, p[:end-off+1])
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return n, io.EOF
	}
	if err == nil && int64(n) < int64(len(p)) {
		return n, io.EOF
	}
	return n, err
}

func (o *s3Object) Close() error { return nil }

func (o *s3Object) Size() int64 { return o.size }
