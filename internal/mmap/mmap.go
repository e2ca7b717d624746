// Package mmap provides read-only memory-mapped file access for the local
// content store. On platforms without mmap support the file is read into
// memory instead; callers see the same API either way.
package mmap

import "os"

// Mapping is a read-only view of a file's contents.
type Mapping struct {
	data   []byte
	mapped bool
}

// Open maps the file at path read-only. Empty files produce a valid Mapping
// over an empty slice without touching the mmap syscall.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return &Mapping{}, nil
	}

	return openMapping(f, info.Size())
}

// Bytes returns the mapped contents. The slice is valid until Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Close releases the mapping. It is safe to call more than once.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	if !m.mapped {
		return nil
	}
	return unmap(data)
}
