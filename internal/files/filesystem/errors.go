package filesystem

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is returned (wrapped in *fs.PathError) when a provider is
// asked to open something that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// PanicError reports a walk callback that panicked.
type PanicError struct {
	Path  string
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("walk callback panicked at %s: %v", e.Path, e.Value)
}

// ErrTooManyLinks is returned when symlink resolution does not terminate.
var ErrTooManyLinks = errors.New("too many levels of symbolic links")
