// Package files groups the file-related sub-packages:
//   - filesystem: filesystem abstraction (OS, in-memory, io/fs and billy backends)
//     and the hidden/readonly/archive attribute providers
//   - scanner: recursive traversal that counts files matching a name pattern
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/fcount/internal/files/filesystem"
//	    "github.com/vvka-141/fcount/internal/files/scanner"
//	)
//
//	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), filesystem.NewOSAttributes(), logger)
//	result, err := s.CountMatching(fcount.NewScanRequest("./data"))
package files
