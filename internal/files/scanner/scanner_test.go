package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/fcount/internal/files/filesystem"
	"github.com/vvka-141/fcount/pkg/fcount"
)

// plain is a mode carrying none of the three attributes.
const plain fs.FileMode = 0o755

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	return NewScannerWithFS(mfs, mfs.Attributes(), nil), mfs
}

func request(pattern string) fcount.ScanRequest {
	return fcount.ScanRequest{Root: "/project", Pattern: pattern}
}

func count(t *testing.T, s *Scanner, req fcount.ScanRequest) int {
	t.Helper()
	result, err := s.CountMatching(req)
	require.NoError(t, err)
	return result.Count
}

func TestNewScannerWithFS_NilArgs(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/")

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil filesystem", func() { NewScannerWithFS(nil, mfs.Attributes(), nil) }},
		{"nil attributes", func() { NewScannerWithFS(mfs, nil, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestCountMatching_EmptyDirectory(t *testing.T) {
	s, _ := newTestScanner()
	assert.Equal(t, 0, count(t, s, request(fcount.DefaultPattern)))
}

func TestCountMatching_SubstringPattern(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("a.txt", "", plain)
	mfs.AddFileWithMode("b.log", "", plain)

	assert.Equal(t, 1, count(t, s, request("txt")))
	assert.Equal(t, 1, count(t, s, request("b.")))
	assert.Equal(t, 0, count(t, s, request("csv")))
}

func TestCountMatching_PatternRules(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("report.TXT", "", plain)
	mfs.AddFileWithMode("report.txt", "", plain)
	mfs.AddFileWithMode("a*b.txt", "", plain)
	mfs.AddFileWithMode("txt/inner.md", "", plain)

	tests := []struct {
		name    string
		pattern string
		want    int
	}{
		{"default matches all", fcount.DefaultPattern, 4},
		{"empty matches all", "", 4},
		{"case-sensitive, directories ignored", "txt", 2},
		{"upper case", "TXT", 1},
		{"not a glob", "*.txt", 0},
		{"literal asterisk", "a*b", 1},
		{"prefix", "report", 2},
		{"found in a subdirectory", "inner", 1},
		{"parent directory names not matched", "project", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, count(t, s, request(tt.pattern)))
		})
	}
}

func TestCountMatching_NestedDirectories(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("root.txt", "", plain)
	mfs.AddFileWithMode("level1/a.txt", "", plain)
	mfs.AddFileWithMode("level1/level2/b.txt", "", plain)
	mfs.AddFileWithMode("level1/level2/level3/c.txt", "", plain)
	mfs.AddDir("level1/empty")

	assert.Equal(t, 4, count(t, s, request(".txt")))
}

func TestCountMatching_HiddenFiles(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("secret.txt", "", plain)
	mfs.SetHidden("secret.txt")

	req := request("txt")
	assert.Equal(t, 0, count(t, s, req))

	req.IncludeHidden = true
	assert.Equal(t, 1, count(t, s, req))
}

func TestCountMatching_DotFilesAreHidden(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode(".env", "", plain)
	mfs.AddFileWithMode("visible.env", "", plain)

	req := request("env")
	assert.Equal(t, 1, count(t, s, req))

	req.IncludeHidden = true
	assert.Equal(t, 2, count(t, s, req))
}

func TestCountMatching_ReadonlyAndArchive(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("plain.dat", "", plain)
	mfs.AddFileWithMode("readonly.dat", "", 0o555)
	mfs.AddFileWithMode("archive.dat", "", 0o644)
	mfs.AddFileWithMode("both.dat", "", 0o444)

	tests := []struct {
		name     string
		readonly bool
		archive  bool
		want     int
	}{
		{"exclude both", false, false, 1},
		{"include readonly", true, false, 2},
		{"include archive", false, true, 2},
		{"include both", true, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("dat")
			req.IncludeReadonly = tt.readonly
			req.IncludeArchive = tt.archive
			assert.Equal(t, tt.want, count(t, s, req))
		})
	}
}

func TestCountMatching_AnyFilterExcludes(t *testing.T) {
	s, mfs := newTestScanner()
	// hidden and archive: including only hidden still drops it
	mfs.AddFileWithMode("x.txt", "", 0o644)
	mfs.SetHidden("x.txt")

	req := request("x")
	req.IncludeHidden = true
	assert.Equal(t, 0, count(t, s, req))

	req.IncludeArchive = true
	assert.Equal(t, 1, count(t, s, req))
}

func TestCountMatching_NonMatchingNeverCounted(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("keep.log", "", plain)
	mfs.AddFileWithMode(".hidden.log", "", 0o444)
	mfs.AddFileWithMode("data.bin", "", 0o444)

	req := request("log")
	req.IncludeHidden, req.IncludeReadonly, req.IncludeArchive = true, true, true
	assert.Equal(t, 2, count(t, s, req))
}

func TestCountMatching_Monotonic(t *testing.T) {
	s, mfs := newTestScanner()
	modes := []fs.FileMode{0o755, 0o555, 0o644, 0o444}
	for i, mode := range modes {
		mfs.AddFileWithMode(fmt.Sprintf("f%d.txt", i), "", mode)
		mfs.AddFileWithMode(fmt.Sprintf(".h%d.txt", i), "", mode)
	}

	counts := map[[3]bool]int{}
	for i := 0; i < 8; i++ {
		flags := [3]bool{i&1 != 0, i&2 != 0, i&4 != 0}
		req := request("txt")
		req.IncludeHidden, req.IncludeReadonly, req.IncludeArchive = flags[0], flags[1], flags[2]
		counts[flags] = count(t, s, req)
	}

	for flags, n := range counts {
		for k := 0; k < 3; k++ {
			if flags[k] {
				continue
			}
			widened := flags
			widened[k] = true
			assert.GreaterOrEqual(t, counts[widened], n, "enabling flag %d from %v decreased the count", k, flags)
		}
	}
	assert.Equal(t, 1, counts[[3]bool{}])
	assert.Equal(t, 8, counts[[3]bool{true, true, true}])
}

func TestCountMatching_Idempotent(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("a.txt", "", plain)
	mfs.AddFileWithMode("sub/b.txt", "", plain)
	mfs.AddFileWithMode("sub/c.txt", "", 0o644)

	first := count(t, s, request("txt"))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, count(t, s, request("txt")))
	}
}

func TestCountMatching_IgnoresNonRegularEntries(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("target.txt", "", plain)
	mfs.AddFileWithMode("dir.txt/inside.md", "", plain)
	mfs.AddDevice("tty.txt")
	mfs.AddSymlink("link.txt", "target.txt")
	mfs.AddSymlink("dangling.txt", "gone.txt")
	mfs.AddSymlink("dirlink.txt", "dir.txt")

	// target.txt and link.txt; the directory, device, dangling link and
	// directory link are skipped
	assert.Equal(t, 2, count(t, s, request("txt")))
}

func TestCountMatching_SymlinkUsesTargetPermissions(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("real/ro.bin", "", 0o444)
	mfs.AddSymlink("alias", "real/ro.bin")

	req := request("alias")
	assert.Equal(t, 0, count(t, s, req))

	req.IncludeReadonly, req.IncludeArchive = true, true
	assert.Equal(t, 1, count(t, s, req))
}

func TestCountMatching_RootErrors(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("file.txt", "")

	tests := []struct {
		name  string
		root  string
		cause error
	}{
		{"missing root", "/nowhere", fs.ErrNotExist},
		{"root is a file", "/project/file.txt", filesystem.ErrNotDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.CountMatching(fcount.ScanRequest{Root: tt.root, Pattern: "*"})
			require.Error(t, err)
			assert.Equal(t, 0, result.Count)
			assert.True(t, errors.Is(err, fcount.ErrFilesystem), "got %v", err)
			assert.True(t, errors.Is(err, tt.cause), "got %v", err)
			assert.Equal(t, fcount.ExitFilesystemError, fcount.ExitCodeForError(err))
		})
	}
}

func TestCountMatching_FailureMidTraversalDiscardsCount(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFileWithMode("a.txt", "", plain)
	mfs.AddFileWithMode("b.txt", "", plain)
	mfs.AddFileWithMode("z/c.txt", "", plain)
	mfs.FailWalk("z", fs.ErrPermission)

	result, err := s.CountMatching(request("txt"))
	require.Error(t, err)
	assert.Equal(t, fcount.ScanResult{}, result)
	assert.True(t, errors.Is(err, fcount.ErrFilesystem))
	assert.True(t, errors.Is(err, fs.ErrPermission))

	var scanErr *fcount.ScanError
	require.True(t, errors.As(err, &scanErr))
	assert.Equal(t, "/project/z", scanErr.Path)
}

func TestCountMatching_InvalidRoot(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.CountMatching(fcount.ScanRequest{Root: "/project\x00evil", Pattern: "*"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fcount.ErrGeneric))
	assert.True(t, errors.Is(err, fcount.ErrInvalidPath))
	assert.Equal(t, fcount.ExitGeneralError, fcount.ExitCodeForError(err))
}

type panickingAttributes struct {
	filesystem.PermissionAttributes
}

func (panickingAttributes) IsHidden(filesystem.File) bool { panic("attribute lookup failed") }

func TestCountMatching_UnexpectedFaultIsGeneric(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFileWithMode("a.txt", "", plain)
	s := NewScannerWithFS(mfs, panickingAttributes{}, nil)

	_, err := s.CountMatching(request("txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fcount.ErrGeneric), "got %v", err)
	assert.False(t, errors.Is(err, fcount.ErrFilesystem))

	var panicErr *filesystem.PanicError
	assert.True(t, errors.As(err, &panicErr))
}

type recordingLogger struct {
	mu       sync.Mutex
	verboses []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verboses = append(l.verboses, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}

func TestCountMatching_VerboseReasons(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFileWithMode("ok.txt", "", plain)
	mfs.AddFileWithMode("ro.txt", "", 0o555)
	mfs.AddFileWithMode(".dot.txt", "", plain)
	logger := &recordingLogger{}
	s := NewScannerWithFS(mfs, mfs.Attributes(), logger)

	assert.Equal(t, 1, count(t, s, request("txt")))

	joined := strings.Join(logger.verboses, "\n")
	assert.Contains(t, joined, "Counting ok.txt")
	assert.Contains(t, joined, "Skipping ro.txt (readonly)")
	assert.Contains(t, joined, "Skipping .dot.txt (hidden)")
	assert.Contains(t, joined, "1 counted")
}

func TestCountMatching_IOFileSystem(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are synthesized on Windows")
	}
	fsys := filesystem.NewIOFileSystem(osDirFS(t), ".")
	s := NewScannerWithFS(fsys, filesystem.PermissionAttributes{}, nil)

	result, err := s.CountMatching(fcount.ScanRequest{Root: ".", Pattern: "txt"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestCountMatching_BillyFileSystem(t *testing.T) {
	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "data/a.txt", []byte("a"), plain))
	require.NoError(t, util.WriteFile(bfs, "data/.b.txt", []byte("b"), plain))
	require.NoError(t, util.WriteFile(bfs, "data/c.txt", []byte("c"), 0o444))
	require.NoError(t, util.WriteFile(bfs, "data/sub/d.txt", []byte("d"), plain))

	s := NewScannerWithFS(filesystem.NewBillyFileSystem(bfs), filesystem.PermissionAttributes{}, nil)

	req := fcount.ScanRequest{Root: "data", Pattern: "txt"}
	assert.Equal(t, 2, count(t, s, req))

	req.IncludeHidden, req.IncludeReadonly, req.IncludeArchive = true, true, true
	assert.Equal(t, 4, count(t, s, req))
}

// osDirFS builds a small tree on disk and returns it as an fs.FS.
func osDirFS(t *testing.T) fs.FS {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), plain)
	writeFile(t, filepath.Join(dir, "b.log"), plain)
	return os.DirFS(dir)
}

func writeFile(t *testing.T, path string, perm fs.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.Chmod(path, perm))
}

func TestCountMatching_OSFileSystem(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are synthesized on Windows")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), plain)
	writeFile(t, filepath.Join(dir, "b.log"), plain)
	writeFile(t, filepath.Join(dir, ".hidden.txt"), plain)
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), plain)
	writeFile(t, filepath.Join(dir, "sub", "ro.txt"), 0o555)
	writeFile(t, filepath.Join(dir, "sub", "archive.txt"), 0o644)
	require.NoError(t, os.Symlink(filepath.Join(dir, "a.txt"), filepath.Join(dir, "link.txt")))

	s := NewScanner(nil)

	req := fcount.NewScanRequest(dir)
	req.Pattern = "txt"
	result, err := s.CountMatching(req)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count) // a.txt, link.txt, sub/c.txt

	req.IncludeHidden, req.IncludeReadonly, req.IncludeArchive = true, true, true
	result, err = s.CountMatching(req)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Count)
}

func TestCountMatching_OSSymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "target", "a.txt"), plain)
	writeFile(t, filepath.Join(dir, "target", "sub", "b.txt"), plain)
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "target"), link))

	logger := &recordingLogger{}
	s := NewScanner(logger)

	direct, err := s.CountMatching(fcount.ScanRequest{Root: filepath.Join(dir, "target"), Pattern: "txt"})
	require.NoError(t, err)
	viaLink, err := s.CountMatching(fcount.ScanRequest{Root: link, Pattern: "txt"})
	require.NoError(t, err)

	assert.Equal(t, 2, direct.Count)
	assert.Equal(t, direct.Count, viaLink.Count)
	assert.Contains(t, strings.Join(logger.verboses, "\n"), "Counting "+filepath.Join("sub", "b.txt"))
}

func TestCountMatching_OSUnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod does not restrict directory reads on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), plain)
	locked := filepath.Join(dir, "locked")
	writeFile(t, filepath.Join(locked, "b.txt"), plain)
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, err := NewScanner(nil).CountMatching(fcount.ScanRequest{Root: dir, Pattern: "txt"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fcount.ErrFilesystem), "got %v", err)
	assert.True(t, errors.Is(err, fs.ErrPermission), "got %v", err)
}
