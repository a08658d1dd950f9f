package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// osFile implements File interface for OS filesystem
type osFile struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *osFile) Path() string         { return f.absPath }
func (f *osFile) RelativePath() string { return f.relPath }
func (f *osFile) Info() FileInfo       { return f.info }

// osDirectory implements Directory interface for OS filesystem
type osDirectory struct {
	absPath  string
	walkRoot string // absPath with symlinks resolved
}

func (d *osDirectory) Path() string { return d.absPath }

// Walk uses filepath.Walk, which visits entries in lexical order and does not
// follow symbolic links below the root. The walk starts from the resolved
// root; reported paths are rebased onto absPath. Entries created or removed
// while the walk is running may or may not be seen.
func (d *osDirectory) Walk(fn func(File, error) error) error {
	return filepath.Walk(d.walkRoot, func(path string, info os.FileInfo, walkErr error) error {
		return callSafely(path, func() error {
			if walkErr != nil {
				return fn(nil, walkErr)
			}

			relPath, relErr := filepath.Rel(d.walkRoot, path)
			if relErr != nil {
				return fn(nil, fmt.Errorf("failed to get relative path: %w", relErr))
			}

			return fn(&osFile{
				absPath: filepath.Join(d.absPath, relPath),
				relPath: relPath,
				info:    info,
			}, nil)
		})
	})
}

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: ErrNotDirectory}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &fs.PathError{Op: "abs", Path: path, Err: err}
	}

	walkRoot, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, &fs.PathError{Op: "evalsymlinks", Path: path, Err: err}
	}

	return &osDirectory{absPath: absPath, walkRoot: walkRoot}, nil
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

var _ FileSystemProvider = (*OSFileSystem)(nil)
