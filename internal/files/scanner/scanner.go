package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/vvka-141/fcount/internal/files/filesystem"
	"github.com/vvka-141/fcount/internal/logging"
	"github.com/vvka-141/fcount/pkg/fcount"
)

// Scanner counts regular files that match a name pattern and survive the
// hidden/readonly/archive filters.
// A Scanner holds no per-scan state; each CountMatching call is independent.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	attrs      filesystem.AttributeProvider
	logger     fcount.Logger
}

// NewScanner creates a scanner over the OS filesystem.
// A nil logger discards diagnostics.
func NewScanner(logger fcount.Logger) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), filesystem.NewOSAttributes(), logger)
}

// NewScannerWithFS creates a scanner with a custom filesystem and attribute source.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider or attrs is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, attrs filesystem.AttributeProvider, logger fcount.Logger) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if attrs == nil {
		panic("attrs cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scanner{
		fsProvider: fsProvider,
		attrs:      attrs,
		logger:     logger,
	}
}

// scanStats tracks what a scan saw, for the verbose summary.
type scanStats struct {
	entries  int
	regular  int
	matched  int
	excluded map[string]int
}

// CountMatching recursively scans req.Root and returns the number of regular
// files whose name contains req.Pattern and which no attribute filter excludes.
//
// The first failure aborts the scan and the count gathered so far is
// discarded. Failures to open the root or to visit an entry are
// KindFilesystem errors; anything else is KindGeneric.
func (s *Scanner) CountMatching(req fcount.ScanRequest) (fcount.ScanResult, error) {
	if strings.ContainsRune(req.Root, 0) {
		return fcount.ScanResult{}, fcount.NewGenericError("",
			fmt.Errorf("%w: directory name contains a NUL byte", fcount.ErrInvalidPath))
	}

	dir, err := s.fsProvider.Open(req.Root)
	if err != nil {
		return fcount.ScanResult{}, fcount.NewFilesystemError(req.Root, err)
	}

	s.logger.Verbose("Scanning %s for names containing %q", dir.Path(), req.Pattern)

	stats := scanStats{excluded: make(map[string]int)}
	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			return fcount.NewFilesystemError(pathOf(walkErr), walkErr)
		}
		stats.entries++

		info, ok, err := s.regularInfo(file)
		if err != nil {
			return fcount.NewFilesystemError(file.Path(), err)
		}
		if !ok {
			return nil
		}
		stats.regular++

		if !MatchesName(file.Info().Name(), req.Pattern) {
			return nil
		}

		attrs := s.attributesOf(filesystem.WithInfo(file, info))
		if reason := attrs.ExclusionReason(req); reason != "" {
			stats.excluded[reason]++
			s.logger.Verbose("Skipping %s (%s)", file.RelativePath(), reason)
			return nil
		}

		stats.matched++
		s.logger.Verbose("Counting %s", file.RelativePath())
		return nil
	})
	if err != nil {
		var scanErr *fcount.ScanError
		if errors.As(err, &scanErr) {
			return fcount.ScanResult{}, scanErr
		}
		return fcount.ScanResult{}, fcount.NewGenericError(dir.Path(), err)
	}

	s.logger.Verbose("Visited %d entries, %d regular files, %d counted, excluded: hidden=%d readonly=%d archive=%d",
		stats.entries, stats.regular, stats.matched,
		stats.excluded["hidden"], stats.excluded["readonly"], stats.excluded["archive"])

	return fcount.ScanResult{Count: stats.matched}, nil
}

// regularInfo returns the metadata to judge file by, and whether it is a
// regular file at all. A symlink counts as a regular file when its target is
// one; the target's metadata is returned in that case. Dangling links are
// skipped.
func (s *Scanner) regularInfo(file filesystem.File) (filesystem.FileInfo, bool, error) {
	info := file.Info()
	if info.Mode().IsRegular() {
		return info, true, nil
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return nil, false, nil
	}

	target, err := s.fsProvider.Stat(file.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return target, target.Mode().IsRegular(), nil
}

func (s *Scanner) attributesOf(file filesystem.File) fcount.FileAttributes {
	return fcount.FileAttributes{
		Hidden:   s.attrs.IsHidden(file),
		Readonly: s.attrs.IsReadonly(file),
		Archive:  s.attrs.IsArchive(file),
	}
}

// pathOf extracts the failing path from a traversal error, if it carries one.
func pathOf(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}
	return ""
}

// Verify Scanner implements the interface at compile time
var _ fcount.FileCounter = (*Scanner)(nil)
