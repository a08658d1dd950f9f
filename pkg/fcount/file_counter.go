package fcount

// FileCounter defines the interface for counting matching files in a tree.
type FileCounter interface {
	// CountMatching walks req.Root recursively and returns the number of
	// regular files whose name contains req.Pattern and which survive the
	// attribute filters. On failure no partial count is returned and the
	// error is a *ScanError.
	CountMatching(req ScanRequest) (ScanResult, error)
}
