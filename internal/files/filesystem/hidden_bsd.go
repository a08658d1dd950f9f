//go:build darwin || freebsd

package filesystem

import (
	"io/fs"
	"syscall"
)

// ufHidden is the UF_HIDDEN bit of st_flags (chflags hidden).
const ufHidden = 0x8000

// isHiddenOnHost reports an entry as hidden when it carries UF_HIDDEN or its
// name starts with a dot.
func isHiddenOnHost(_ string, info fs.FileInfo) bool {
	if IsDotName(info.Name()) {
		return true
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Flags&ufHidden != 0
	}
	return false
}
