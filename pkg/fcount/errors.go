package fcount

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := counter.CountMatching(req)
//	if errors.Is(err, fcount.ErrFilesystem) {
//	    // root missing, not a directory, or traversal failed
//	}
var (
	// ErrUsage indicates missing required arguments or invalid flags.
	ErrUsage = errors.New("usage error")

	// ErrInvalidConfig indicates an unreadable config file, env file or
	// environment value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFilesystem matches any *ScanError of kind KindFilesystem.
	ErrFilesystem = errors.New("filesystem error")

	// ErrGeneric matches any *ScanError of kind KindGeneric.
	ErrGeneric = errors.New("scan error")

	// ErrInvalidPath indicates a root path that cannot name a file.
	ErrInvalidPath = errors.New("invalid path")
)

// ErrorKind classifies a failed scan.
type ErrorKind int

const (
	// KindGeneric covers any fault that is not a filesystem error.
	KindGeneric ErrorKind = iota
	// KindFilesystem covers missing or inaccessible roots and I/O failures
	// during traversal.
	KindFilesystem
)

func (k ErrorKind) String() string {
	if k == KindFilesystem {
		return "filesystem"
	}
	return "generic"
}

// ScanError is the failure half of a scan result: a kind, the path being
// visited when the scan aborted, and the underlying cause.
type ScanError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Path == "" || strings.Contains(e.Err.Error(), e.Path) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Is matches ErrFilesystem or ErrGeneric according to the error kind.
func (e *ScanError) Is(target error) bool {
	switch target {
	case ErrFilesystem:
		return e.Kind == KindFilesystem
	case ErrGeneric:
		return e.Kind == KindGeneric
	}
	return false
}

// NewFilesystemError wraps err as a filesystem failure at path.
func NewFilesystemError(path string, err error) *ScanError {
	return &ScanError{Kind: KindFilesystem, Path: path, Err: err}
}

// NewGenericError wraps err as a generic failure at path.
func NewGenericError(path string, err error) *ScanError {
	return &ScanError{Kind: KindGeneric, Path: path, Err: err}
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage), errors.Is(err, ErrInvalidConfig):
		return ExitUsageError
	case errors.Is(err, ErrFilesystem):
		return ExitFilesystemError
	}

	return ExitGeneralError
}
