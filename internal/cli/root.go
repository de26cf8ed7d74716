package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pkgdata",
	Short: "Package-data manifests for Python source trees",
	Long: `pkgdata walks a Python source tree and reports which data files belong to
which package, the way a packaging tool needs them for package_data.

A directory holding __init__.py is a package; every other file below it,
minus the exclude patterns, is package data. Settings come from pkgdata.yaml
in the project directory, then PKGDATA_* environment variables (a .env file
is loaded first), then command-line flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or exclude pattern
  11 - Directory tree could not be read
  12 - Stored manifest does not match the tree
  13 - Output could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringP("project", "C", ".", "Project directory holding pkgdata.yaml")
	_ = rootCmd.MarkPersistentFlagDirname("project")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// getProjectFlag returns the project directory, "." when unset.
func getProjectFlag(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("project")
	if err != nil || dir == "" {
		return "."
	}
	return dir
}
