package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/fcount/pkg/fcount"
)

const longDescription = `fcount walks a directory tree and counts the regular files whose name
contains PATTERN as a plain, case-sensitive substring. The default pattern
'*' counts every file.

Hidden, read-only and archive files are excluded unless the matching
--hidden, --readonly or --archive switch is given. A file is dropped if any
one of its attributes is excluded.

  hidden    Windows hidden attribute, macOS/FreeBSD chflags hidden, or a
            name starting with '.'
  readonly  the owner has no write permission
  archive   the owner has no execute permission

Settings are read, lowest precedence first, from fcount.yaml (or --config),
the FCOUNT_PATTERN, FCOUNT_HIDDEN, FCOUNT_READONLY, FCOUNT_ARCHIVE and
FCOUNT_VERBOSE environment variables (optionally loaded from --env-file),
and the command line.

Exit Codes:
  0  - Success (also --help)
  1  - Unexpected error during the scan
  2  - Missing arguments, invalid flags or invalid configuration
  3  - Filesystem error (directory missing, not a directory, or unreadable)`

// countFlags holds the parsed command-line flags of one invocation.
type countFlags struct {
	hidden     bool
	readonly   bool
	archive    bool
	verbose    bool
	configPath string
	envFile    string
}

// newRootCmd builds the fcount command writing to stdout and stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &countFlags{}

	cmd := &cobra.Command{
		Use:               "fcount <directory> [pattern]",
		Short:             "Count files whose name contains a pattern",
		Long:              longDescription,
		Args:              requireDirectory,
		ValidArgsFunction: completeDirectory,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, flags)
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(versionString())
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		reportUsageError(c, err)
		return fmt.Errorf("%w: %v", fcount.ErrUsage, err)
	})

	cmd.Flags().BoolVar(&flags.hidden, "hidden", false, "Include hidden files")
	cmd.Flags().BoolVar(&flags.readonly, "readonly", false, "Include read-only files")
	cmd.Flags().BoolVar(&flags.archive, "archive", false, "Include archive files (owner execute bit absent)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log every counted and skipped file to stderr")
	cmd.Flags().StringVar(&flags.configPath, "config", "",
		"YAML config file (default: ./"+fcount.ConfigFileName+" if present)")
	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Load FCOUNT_* variables from a .env file")

	return cmd
}

// Execute runs fcount with the process arguments.
func Execute() error {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs fcount with args, writing results to stdout and
// diagnostics to stderr. The returned error maps to an exit code through
// fcount.ExitCodeForError.
func ExecuteArgs(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)

	// --help wins over everything else on the line, including bad flags.
	if wantsHelp(args) {
		cmd.InitDefaultHelpFlag()
		cmd.InitDefaultVersionFlag()
		return cmd.Help()
	}

	cmd.SetArgs(args)
	return cmd.Execute()
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
