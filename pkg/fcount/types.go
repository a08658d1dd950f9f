package fcount

// ScanRequest holds the inputs of a single scan.
type ScanRequest struct {
	// Root is the directory to scan. It must exist and be traversable.
	Root string

	// Pattern is a literal, case-sensitive substring matched against file names.
	// DefaultPattern and the empty string match every name.
	Pattern string

	IncludeHidden   bool
	IncludeReadonly bool
	IncludeArchive  bool
}

// NewScanRequest returns a request for root with the default pattern and
// every attribute class excluded.
func NewScanRequest(root string) ScanRequest {
	return ScanRequest{Root: root, Pattern: DefaultPattern}
}

// FileAttributes are the per-entry facts the exclusion rule is evaluated on.
// They are computed fresh for every entry and never cached.
type FileAttributes struct {
	Hidden   bool
	Readonly bool

	// Archive is true when the owner execute bit is absent. This is a
	// permission-bit stand-in, not a real archive flag.
	Archive bool
}

// Excluded reports whether a file with these attributes is dropped by req.
// A file failing any single filter is excluded regardless of the others.
func (a FileAttributes) Excluded(req ScanRequest) bool {
	return a.ExclusionReason(req) != ""
}

// ExclusionReason names the first filter that excludes the file, or returns
// "" when the file is included.
func (a FileAttributes) ExclusionReason(req ScanRequest) string {
	switch {
	case a.Hidden && !req.IncludeHidden:
		return "hidden"
	case a.Readonly && !req.IncludeReadonly:
		return "readonly"
	case a.Archive && !req.IncludeArchive:
		return "archive"
	default:
		return ""
	}
}

// ScanResult is the outcome of a successful scan.
type ScanResult struct {
	Count int
}
