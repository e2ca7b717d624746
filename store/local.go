package store

import (
	"context"
	"io"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/djgrant/piq/internal/mmap"
)

// LocalStore implements ContentStore over a local directory tree.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a file for reading. Files are memory-mapped, which keeps
// bounded partial reads cheap for random access.
func (s *LocalStore) Open(_ context.Context, name string) (Object, error) {
	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	return &localObject{m: m}, nil
}

// List lazily walks the directory tree under prefix, yielding slash-separated
// names relative to the store root in lexical order. Stopping the iteration
// stops the walk.
func (s *LocalStore) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		// Walk from the deepest directory the prefix fully names.
		dir := prefix
		if !strings.HasSuffix(prefix, "/") {
			dir = path.Dir(prefix)
			if dir == "." {
				dir = ""
			}
		}

		start := filepath.Join(s.root, filepath.FromSlash(dir))
		err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) && p == start {
					return fs.SkipAll // nothing under this prefix
				}
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(s.root, p)
			if err != nil {
				return err
			}
			name := filepath.ToSlash(rel)
			if !strings.HasPrefix(name, prefix) {
				return nil
			}
			if !yield(name, nil) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// Stat reports whether a regular file exists at name.
func (s *LocalStore) Stat(_ context.Context, name string) (bool, error) {
	info, err := os.Stat(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

type localObject struct {
	m *mmap.Mapping
}

func (o *localObject) ReadAt(p []byte, off int64) (int, error) {
	data := o.m.Bytes()
	if off < 0 || off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (o *localObject) Close() error { return o.m.Close() }

func (o *localObject) Size() int64 { return int64(len(o.m.Bytes())) }
