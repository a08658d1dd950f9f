// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines interfaces for directory traversal and per-entry
// attribute lookup, enabling testability through in-memory implementations
// while maintaining compatibility with the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: Factory for creating directory instances
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual filesystem entry with metadata
//   - AttributeProvider: Answers hidden/readonly/archive for a single entry
//
// Implementations:
//   - OSFileSystem and OSAttributes: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//   - IOFileSystem: Adapter for any io/fs.FS (embed.FS, fstest.MapFS, os.DirFS)
//   - BillyFileSystem: Adapter for any go-billy filesystem
package filesystem
