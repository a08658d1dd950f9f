//go:build windows

package filesystem

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/windows"
)

// isHiddenOnHost checks FILE_ATTRIBUTE_HIDDEN. The attribute data captured by
// the walk is used when present; otherwise the path is queried directly.
func isHiddenOnHost(path string, info fs.FileInfo) bool {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return data.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
	}

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
