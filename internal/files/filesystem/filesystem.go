package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an individual filesystem entry and its metadata
type File interface {
	// Path returns the absolute path to the entry
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns entry metadata. Symlinks are not followed.
	Info() FileInfo
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order, calling fn once for
	// every entry including the root itself. Traversal failures are passed to
	// fn as a nil File and a non-nil error.
	// If fn returns an error, walking stops and Walk returns that error.
	// Symlinked directories are reported but not descended into.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances
type FileSystemProvider interface {
	// Open opens a directory at the specified path.
	// Errors are *fs.PathError values wrapping fs.ErrNotExist,
	// fs.ErrPermission or ErrNotDirectory where applicable.
	Open(path string) (Directory, error)

	// Stat returns file information for the given path, following symlinks
	Stat(path string) (FileInfo, error)
}

// resolvedFile presents a walked entry with replacement metadata.
type resolvedFile struct {
	File
	info FileInfo
}

func (f *resolvedFile) Info() FileInfo { return f.info }

// WithInfo returns f with Info replaced by info. The scanner uses it to carry
// a symlink's target metadata while keeping the link's own path.
func WithInfo(f File, info FileInfo) File {
	return &resolvedFile{File: f, info: info}
}

// callSafely invokes fn and converts a panic into a *PanicError.
func callSafely(path string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Path: path, Value: r}
		}
	}()
	return fn()
}
