//go:build !unix

package mmap

import (
	"io"
	"os"
)

// Fallback for platforms without a usable mmap: read the whole file.
func openMapping(f *os.File, size int64) (*Mapping, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return &Mapping{data: data, mapped: false}, nil
}

func unmap([]byte) error { return nil }
