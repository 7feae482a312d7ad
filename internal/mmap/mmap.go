// Package mmap provides read-only memory-mapped file access for
// zero-copy snapshot restores.
package mmap

import (
	"errors"
	"os"
)

// File is a read-only memory-mapped file. Close unmaps the memory; the
// mapped bytes must not be used after Close.
type File struct {
	data []byte
	f    *os.File
}

// Open maps the file at path into memory as read-only. Empty files map
// to a nil byte slice.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	if size < 0 {
		f.Close()
		return nil, errors.New("mmap: negative file size")
	}

	data, err := mmap(f, int(size))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the mapped contents. The slice is valid only until
// Close is called.
func (m *File) Bytes() []byte {
	return m.data
}

// Size returns the length of the mapping in bytes.
func (m *File) Size() int {
	return len(m.data)
}

// Close unmaps the memory and closes the underlying file.
func (m *File) Close() error {
	if m == nil {
		return nil
	}
	var err error
	if m.data != nil {
		err = munmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
