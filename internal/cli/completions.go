package cli

import (
	"github.com/spf13/cobra"
)

// completeDirectory completes the <directory> argument with directories only
// and offers nothing for the free-form pattern.
func completeDirectory(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
