package filesystem

import (
	"io/fs"
	"strings"
)

// Owner permission bits the readonly and archive checks look at.
const (
	ownerWrite fs.FileMode = 0o200
	ownerExec  fs.FileMode = 0o100
)

// AttributeProvider answers the three attribute questions for a single entry.
// Every method must be a pure function of the entry it is given.
type AttributeProvider interface {
	IsHidden(f File) bool
	IsReadonly(f File) bool
	IsArchive(f File) bool
}

// PermissionAttributes derives readonly and archive from the owner permission
// bits and treats dot-prefixed names as hidden. It is the fallback for
// providers with no native hidden flag.
type PermissionAttributes struct{}

// IsHidden reports whether the entry name starts with a dot.
func (PermissionAttributes) IsHidden(f File) bool {
	return IsDotName(f.Info().Name())
}

// IsReadonly reports whether the owner write bit is absent.
func (PermissionAttributes) IsReadonly(f File) bool {
	return f.Info().Mode().Perm()&ownerWrite == 0
}

// IsArchive reports whether the owner execute bit is absent. The bit stands
// in for an archive flag on every platform, Windows included.
func (PermissionAttributes) IsArchive(f File) bool {
	return f.Info().Mode().Perm()&ownerExec == 0
}

// IsDotName reports whether name follows the Unix hidden-file convention.
// "." and ".." are not considered hidden.
func IsDotName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// OSAttributes reads attributes from the host operating system: the native
// hidden flag where one exists (FILE_ATTRIBUTE_HIDDEN on Windows, UF_HIDDEN
// on macOS and FreeBSD), dot-prefixed names everywhere else, and permission
// bits for readonly and archive.
type OSAttributes struct {
	PermissionAttributes
}

// NewOSAttributes creates the attribute provider for the OS filesystem.
func NewOSAttributes() *OSAttributes {
	return &OSAttributes{}
}

// IsHidden consults the platform hidden flag for the entry.
func (a *OSAttributes) IsHidden(f File) bool {
	return isHiddenOnHost(f.Path(), f.Info())
}

var (
	_ AttributeProvider = PermissionAttributes{}
	_ AttributeProvider = (*OSAttributes)(nil)
)
