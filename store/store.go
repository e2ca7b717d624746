// Package store abstracts access to a collection of named content objects.
//
// A ContentStore is the storage medium behind the reference resolvers: the
// local filesystem, an in-memory map for tests, or an S3-compatible object
// store (see the minio and s3 subpackages). Decorators add caching,
// rate limiting and transparent decompression without the resolvers caring.
package store

import (
	"context"
	"io"
	"iter"
	"os"
)

// ErrNotFound is returned when an object does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ContentStore is a read-only view over named content objects.
//
// Names use forward slashes regardless of platform, so they line up with the
// pattern grammar's separator handling.
type ContentStore interface {
	// Open opens an object for reading. Objects support random access so
	// metadata readers can do bounded partial reads.
	Open(ctx context.Context, name string) (Object, error)

	// List lazily yields the names of objects under the given prefix.
	// Stopping early stops further listing work.
	List(ctx context.Context, prefix string) iter.Seq2[string, error]

	// Stat reports whether an object exists without opening it.
	Stat(ctx context.Context, name string) (bool, error)
}

// Object is a read-only handle to one content object.
type Object interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the object in bytes.
	Size() int64
}

// ReadAll reads the full contents of an object.
func ReadAll(o Object) ([]byte, error) {
	data := make([]byte, o.Size())
	if len(data) == 0 {
		return data, nil
	}
	n, err := o.ReadAt(data, 0)
	if err == io.EOF && int64(n) == o.Size() {
		err = nil
	}
	return data[:n], err
}

// NewBytesObject returns an Object serving the given in-memory bytes.
// Useful for backends that materialize content before serving it.
func NewBytesObject(data []byte) Object { return &bytesObject{data: data} }

// bytesObject is an Object over an in-memory byte slice. It backs the
// memory store and the decompressing decorator.
type bytesObject struct {
	data []byte
}

func (b *bytesObject) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *bytesObject) Close() error { return nil }

func (b *bytesObject) Size() int64 { return int64(len(b.data)) }
