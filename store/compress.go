package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressedStore wraps a ContentStore whose objects may be stored
// compressed. Listing strips the compression suffix so callers — and pattern
// matching in particular — see logical names; Open transparently locates and
// decompresses the physical object.
//
// Recognized suffixes: .zst (zstandard), .gz (gzip), .lz4 (LZ4 frame).
type CompressedStore struct {
	inner ContentStore
}

// NewCompressedStore wraps inner with transparent decompression.
func NewCompressedStore(inner ContentStore) *CompressedStore {
	return &CompressedStore{inner: inner}
}

var compressionSuffixes = []string{".zst", ".gz", ".lz4"}

// Open opens the object by logical name: first as stored, then probing each
// compression suffix. Compressed objects are decompressed fully; partial
// reads then operate on the decompressed bytes.
func (s *CompressedStore) Open(ctx context.Context, name string) (Object, error) {
	obj, err := s.inner.Open(ctx, name)
	if err == nil {
		return obj, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	for _, suffix := range compressionSuffixes {
		obj, err := s.inner.Open(ctx, name+suffix)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		data, rerr := ReadAll(obj)
		cerr := obj.Close()
		if rerr != nil {
			return nil, rerr
		}
		if cerr != nil {
			return nil, cerr
		}
		plain, err := decompress(suffix, data)
		if err != nil {
			return nil, err
		}
		return &bytesObject{data: plain}, nil
	}

	return nil, ErrNotFound
}

// List yields logical names: physical names with any compression suffix
// removed.
func (s *CompressedStore) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for name, err := range s.inner.List(ctx, prefix) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(logicalName(name), nil) {
				return
			}
		}
	}
}

// Stat reports existence by logical name.
func (s *CompressedStore) Stat(ctx context.Context, name string) (bool, error) {
	ok, err := s.inner.Stat(ctx, name)
	if ok || err != nil {
		return ok, err
	}
	for _, suffix := range compressionSuffixes {
		ok, err := s.inner.Stat(ctx, name+suffix)
		if ok || err != nil {
			return ok, err
		}
	}
	return false, nil
}

func logicalName(name string) string {
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

func decompress(suffix string, data []byte) ([]byte, error) {
	switch suffix {
	case ".zst":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".lz4":
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return data, nil
	}
}
