// Package scanner counts files in a directory tree by name and attributes.
//
// The scanner package is responsible for:
//   - Recursively visiting every entry reachable from a root directory
//   - Matching regular file names against a literal substring pattern
//   - Excluding hidden, read-only and archive files unless asked to include them
//   - Classifying failures as filesystem or generic errors
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider and filesystem.AttributeProvider, enabling
// both production use with the OS filesystem and testing with in-memory
// filesystems.
package scanner
