package filesystem

import (
	"io/fs"
	"path"
	"strings"
)

// ioFile implements File interface for an io/fs.FS
type ioFile struct {
	absPath string // slash-rooted path within the fs.FS
	relPath string // relative path from the walked directory
	info    fs.FileInfo
}

func (f *ioFile) Path() string         { return f.absPath }
func (f *ioFile) RelativePath() string { return f.relPath }
func (f *ioFile) Info() FileInfo       { return f.info }

// ioDirectory implements Directory interface for an io/fs.FS
type ioDirectory struct {
	fsys   fs.FS
	fsPath string // unrooted path as fs.FS expects it
}

func (d *ioDirectory) Path() string { return rooted(d.fsPath) }

func (d *ioDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.fsys, d.fsPath, func(filePath string, entry fs.DirEntry, walkErr error) error {
		return callSafely(filePath, func() error {
			if walkErr != nil {
				return fn(nil, walkErr)
			}

			info, err := entry.Info()
			if err != nil {
				return fn(nil, err)
			}

			return fn(&ioFile{
				absPath: rooted(filePath),
				relPath: relativeTo(d.fsPath, filePath),
				info:    info,
			}, nil)
		})
	})
}

// IOFileSystem implements FileSystemProvider for any io/fs.FS, such as
// embed.FS, os.DirFS or fstest.MapFS. Symlinks are followed only as far as
// the underlying fs.FS does so in fs.Stat.
//
// Paths handed out by Directory.Path and File.Path are slash-rooted at the
// top of the fs.FS; paths without a leading slash are taken relative to root.
type IOFileSystem struct {
	fsys fs.FS
	root string // root path within the fs.FS (always uses forward slashes)
}

// NewIOFileSystem creates a new filesystem provider wrapping fsys.
// The root parameter specifies the subdirectory within fsys to treat as the root.
func NewIOFileSystem(fsys fs.FS, root string) *IOFileSystem {
	return &IOFileSystem{
		fsys: fsys,
		root: toFSPath(root),
	}
}

// resolve maps a caller path onto a valid fs.FS path below root.
func (p *IOFileSystem) resolve(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || name == "." {
		return p.root
	}
	if strings.HasPrefix(name, "/") {
		return toFSPath(name)
	}
	return toFSPath(path.Join(p.root, name))
}

// toFSPath cleans name and strips any leading slash; fs.FS paths are unrooted.
func toFSPath(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	if name == "" {
		return "."
	}
	return name
}

// rooted turns an fs.FS path into the slash-rooted form handed to callers.
func rooted(fsPath string) string {
	if fsPath == "." {
		return "/"
	}
	return "/" + fsPath
}

// Open implements FileSystemProvider.Open
func (p *IOFileSystem) Open(openPath string) (Directory, error) {
	absPath := p.resolve(openPath)

	info, err := fs.Stat(p.fsys, absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: openPath, Err: ErrNotDirectory}
	}

	return &ioDirectory{
		fsys:   p.fsys,
		fsPath: absPath,
	}, nil
}

// Stat implements FileSystemProvider.Stat
func (p *IOFileSystem) Stat(statPath string) (FileInfo, error) {
	return fs.Stat(p.fsys, p.resolve(statPath))
}

var _ FileSystemProvider = (*IOFileSystem)(nil)
