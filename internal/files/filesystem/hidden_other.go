//go:build !windows && !darwin && !freebsd

package filesystem

import "io/fs"

// isHiddenOnHost falls back to the dot-prefix convention; Linux and the other
// Unixes have no hidden attribute.
func isHiddenOnHost(_ string, info fs.FileInfo) bool {
	return IsDotName(info.Name())
}
