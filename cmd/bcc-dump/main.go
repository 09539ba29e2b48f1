// Command bcc-dump prints a human-readable listing of a sequential
// container file's entries.
package main

import (
	"os"

	"github.com/bcc3d/bcc/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bcc-dump <file>",
	Short: "Dump a sequential container file's entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.PrintDump(os.Stdout, args[0]); err != nil {
			cli.Fatal(cli.ExitCodeFor(err), "bcc-dump: %v", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.Fatal(cli.ExitInvalidFormat, "bcc-dump: %v", err)
	}
}
