package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxSymlinkHops bounds symlink resolution in the in-memory filesystem.
const maxSymlinkHops = 40

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory entries
type memoryFile struct {
	absPath string
	relPath string
	info    *memoryFileInfo
	target  string // symlink target, absolute
	hidden  bool
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.getEntriesUnder(d.absPath)

	// Sort by path for deterministic order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, entry := range entries {
		callbackErr := callSafely(entry.absPath, func() error {
			if failure, ok := d.fs.failures[entry.absPath]; ok {
				return fn(nil, &fs.PathError{Op: "readdir", Path: entry.absPath, Err: failure})
			}
			return fn(&memoryFile{
				absPath: entry.absPath,
				relPath: relativeTo(d.absPath, entry.absPath),
				info:    entry.info,
				target:  entry.target,
				hidden:  entry.hidden,
			}, nil)
		})

		// If callback returned an error (or panicked), stop walking
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Entries carry permission bits, an explicit hidden mark and optional symlink
// targets so every attribute combination can be built without touching disk.
type MemoryFileSystem struct {
	files    map[string]*memoryFile // map of absolute path -> entry
	failures map[string]error       // walk errors injected per path
	root     string                 // root directory path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:    make(map[string]*memoryFile),
		failures: make(map[string]error),
		root:     root,
	}

	mfs.files[root] = &memoryFile{
		absPath: root,
		relPath: ".",
		info: &memoryFileInfo{
			name:    path.Base(root),
			mode:    0o755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}

	return mfs
}

// AddFile adds a regular file with mode 0644, the usual result of creating a
// file under umask 022.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithMode(filePath, content, 0o644)
}

// AddFileWithMode adds a regular file with the given permission bits.
func (mfs *MemoryFileSystem) AddFileWithMode(filePath string, content string, perm fs.FileMode) {
	absPath := mfs.resolve(filePath)
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    perm.Perm(),
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.resolve(dirPath)
	mfs.files[absPath] = mfs.newDir(absPath)
	mfs.ensureDirectoriesExist(absPath)
}

// AddSymlink adds a symbolic link at linkPath pointing to target.
// Relative targets are resolved against the link's directory.
func (mfs *MemoryFileSystem) AddSymlink(linkPath, target string) {
	absPath := mfs.resolve(linkPath)
	target = filepath.ToSlash(target)
	if !path.IsAbs(target) {
		target = path.Join(path.Dir(absPath), target)
	}
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		target:  path.Clean(target),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0o777 | fs.ModeSymlink,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// AddDevice adds a character device entry, which is neither a regular file
// nor a directory.
func (mfs *MemoryFileSystem) AddDevice(devPath string) {
	absPath := mfs.resolve(devPath)
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0o666 | fs.ModeDevice | fs.ModeCharDevice,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// SetHidden marks an existing entry with the hidden attribute, independent of
// its name. It is a no-op for unknown paths.
func (mfs *MemoryFileSystem) SetHidden(entryPath string) {
	if f, ok := mfs.files[mfs.resolve(entryPath)]; ok {
		f.hidden = true
	}
}

// FailWalk makes Walk report err for entryPath instead of visiting it,
// simulating an entry that becomes inaccessible mid-traversal.
func (mfs *MemoryFileSystem) FailWalk(entryPath string, err error) {
	mfs.failures[mfs.resolve(entryPath)] = err
}

// Attributes returns an AttributeProvider that honours SetHidden marks in
// addition to dot-prefixed names.
func (mfs *MemoryFileSystem) Attributes() AttributeProvider {
	return memoryAttributes{}
}

type memoryAttributes struct {
	PermissionAttributes
}

func (memoryAttributes) IsHidden(f File) bool {
	if mf, ok := unwrapMemoryFile(f); ok && mf.hidden {
		return true
	}
	return IsDotName(f.Info().Name())
}

func unwrapMemoryFile(f File) (*memoryFile, bool) {
	if rf, ok := f.(*resolvedFile); ok {
		f = rf.File
	}
	mf, ok := f.(*memoryFile)
	return mf, ok
}

// resolve turns a caller path into an absolute, cleaned virtual path.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) newDir(absPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0o755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == mfs.root {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = mfs.newDir(dir)
	mfs.ensureDirectoriesExist(dir)
}

// getEntriesUnder returns the entry at basePath and everything below it,
// without descending through symlinks.
func (mfs *MemoryFileSystem) getEntriesUnder(basePath string) []*memoryFile {
	var entries []*memoryFile
	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}
		if matched {
			entries = append(entries, file)
		}
	}
	return entries
}

// relativeTo returns target relative to base for slash-separated paths,
// where base is an ancestor of target.
func relativeTo(base, target string) string {
	if base == target {
		return "."
	}
	if base == "/" || base == "." {
		return strings.TrimPrefix(target, "/")
	}
	return strings.TrimPrefix(target, base+"/")
}

// follow resolves symlinks starting at absPath.
func (mfs *MemoryFileSystem) follow(absPath string) (*memoryFile, error) {
	for hops := 0; hops < maxSymlinkHops; hops++ {
		file, exists := mfs.files[absPath]
		if !exists {
			return nil, fs.ErrNotExist
		}
		if file.info.mode&fs.ModeSymlink == 0 {
			return file, nil
		}
		absPath = file.target
	}
	return nil, ErrTooManyLinks
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	file, err := mfs.follow(absPath)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: openPath, Err: err}
	}
	if !file.info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: openPath, Err: ErrNotDirectory}
	}

	return &memoryDirectory{
		absPath: file.absPath,
		fs:      mfs,
	}, nil
}

// Stat implements FileSystemProvider.Stat. Symlinks are followed; the
// returned info keeps the name of the path that was asked for.
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.resolve(statPath)

	file, err := mfs.follow(absPath)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: err}
	}

	info := *file.info
	info.name = path.Base(absPath)
	return &info, nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
