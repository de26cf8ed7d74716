package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalRoot accepts zero or one scan root argument.
func OptionalRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./src`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
