package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// billyFile implements File interface for a go-billy filesystem
type billyFile struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *billyFile) Path() string         { return f.absPath }
func (f *billyFile) RelativePath() string { return f.relPath }
func (f *billyFile) Info() FileInfo       { return f.info }

// billyDirectory implements Directory interface for a go-billy filesystem
type billyDirectory struct {
	bfs     billy.Filesystem
	absPath string
}

func (d *billyDirectory) Path() string { return d.absPath }

// Walk uses util.Walk, which lstats every entry and visits names in sorted order.
func (d *billyDirectory) Walk(fn func(File, error) error) error {
	return util.Walk(d.bfs, d.absPath, func(path string, info os.FileInfo, walkErr error) error {
		return callSafely(path, func() error {
			if walkErr != nil {
				return fn(nil, asPathError("walk", path, walkErr))
			}

			relPath, relErr := filepath.Rel(d.absPath, path)
			if relErr != nil {
				relPath = path
			}

			return fn(&billyFile{
				absPath: path,
				relPath: relPath,
				info:    info,
			}, nil)
		})
	})
}

// BillyFileSystem implements FileSystemProvider on top of a go-billy
// filesystem, e.g. memfs for tests or an osfs chroot.
type BillyFileSystem struct {
	bfs billy.Filesystem
}

// NewBillyFileSystem creates a provider backed by bfs.
func NewBillyFileSystem(bfs billy.Filesystem) *BillyFileSystem {
	return &BillyFileSystem{bfs: bfs}
}

// Open implements FileSystemProvider.Open
func (p *BillyFileSystem) Open(path string) (Directory, error) {
	info, err := p.bfs.Stat(path)
	if err != nil {
		return nil, asPathError("open", path, err)
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: ErrNotDirectory}
	}

	return &billyDirectory{bfs: p.bfs, absPath: path}, nil
}

// Stat implements FileSystemProvider.Stat
func (p *BillyFileSystem) Stat(path string) (FileInfo, error) {
	info, err := p.bfs.Stat(path)
	if err != nil {
		return nil, asPathError("stat", path, err)
	}
	return info, nil
}

// asPathError keeps errors that already carry a path and wraps the rest.
func asPathError(op, path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return err
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}

var _ FileSystemProvider = (*BillyFileSystem)(nil)
