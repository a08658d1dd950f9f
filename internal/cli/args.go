package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/fcount/pkg/fcount"
)

// requireDirectory validates the <directory> [pattern] positional arguments.
// With no arguments at all the usage text goes to stdout.
func requireDirectory(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		_ = cmd.Usage()
		return fmt.Errorf("%w: missing required argument <directory>", fcount.ErrUsage)
	}
	if len(args) > 2 {
		err := fmt.Errorf("accepts at most 2 arg(s), received %d", len(args))
		reportUsageError(cmd, err)
		return fmt.Errorf("%w: %v", fcount.ErrUsage, err)
	}
	return nil
}

// reportUsageError prints err and a pointer to --help on stderr.
func reportUsageError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", errorPrefix(cmd.ErrOrStderr(), "Error:"), err)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
}
