package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/fcount/internal/config"
	"github.com/vvka-141/fcount/internal/files/scanner"
	"github.com/vvka-141/fcount/internal/logging"
	"github.com/vvka-141/fcount/pkg/fcount"
)

// runCount resolves settings, runs the scan and prints the result followed by
// the exit code line.
func runCount(cmd *cobra.Command, args []string, flags *countFlags) error {
	directory := args[0]

	settings, err := resolveSettings(cmd, args, flags)
	if err != nil {
		reportUsageError(cmd, err)
		return err
	}

	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), settings.Verbose)
	req := settings.Request(directory)
	logger.Verbose("Options: pattern=%q hidden=%t readonly=%t archive=%t",
		req.Pattern, req.IncludeHidden, req.IncludeReadonly, req.IncludeArchive)

	result, err := scanner.NewScanner(logger).CountMatching(req)
	if err != nil {
		reportScanError(logger, cmd.ErrOrStderr(), err)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Number of files matching pattern '%s' in directory '%s': %d\n",
			req.Pattern, directory, result.Count)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exit code: %d\n", fcount.ExitCodeForError(err))
	return err
}

// resolveSettings layers the config file, the environment and the command
// line, in increasing order of precedence.
func resolveSettings(cmd *cobra.Command, args []string, flags *countFlags) (*config.Settings, error) {
	var (
		settings *config.Settings
		err      error
	)
	if flags.configPath != "" {
		settings, err = config.Load(flags.configPath)
	} else {
		settings, err = config.LoadOptional(fcount.ConfigFileName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fcount.ErrInvalidConfig, err)
	}

	lookup, err := config.EnvLookup(flags.envFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fcount.ErrInvalidConfig, err)
	}
	if err := settings.ApplyEnv(lookup); err != nil {
		return nil, fmt.Errorf("%w: %v", fcount.ErrInvalidConfig, err)
	}

	if len(args) > 1 {
		settings.Pattern = args[1]
	}

	f := cmd.Flags()
	if f.Changed("hidden") {
		settings.Include.Hidden = flags.hidden
	}
	if f.Changed("readonly") {
		settings.Include.Readonly = flags.readonly
	}
	if f.Changed("archive") {
		settings.Include.Archive = flags.archive
	}
	if f.Changed("verbose") {
		settings.Verbose = flags.verbose
	}

	return settings, nil
}

// reportScanError logs one classified error line through logger.Info, which
// writes the message untagged. stderr only decides whether to color it.
func reportScanError(logger fcount.Logger, stderr io.Writer, err error) {
	prefix := "Error:"
	if errors.Is(err, fcount.ErrFilesystem) {
		prefix = "Filesystem error:"
	}
	logger.Info("%s %v", errorPrefix(stderr, prefix), err)
}
