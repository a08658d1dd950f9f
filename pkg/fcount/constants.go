package fcount

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0 // Scan completed (also --help)
	ExitGeneralError    = 1 // Unknown or unclassified error
	ExitUsageError      = 2 // CLI usage error (missing args, invalid flags)
	ExitFilesystemError = 3 // Root missing, inaccessible, or I/O failure during traversal
	ExitPanic           = 4 // Internal panic (unexpected crash)
)

const (
	// DefaultPattern is the pattern used when none is given on the command line.
	// It matches every file name.
	DefaultPattern = "*"

	// ConfigFileName is the config file looked up in the working directory
	// when --config is not given.
	ConfigFileName = "fcount.yaml"

	// EnvPrefix prefixes every environment variable fcount reads.
	EnvPrefix = "FCOUNT_"
)
