// Command bcc-recover salvages the readable blocks of a damaged
// sequential container file into a fresh, verified file.
package main

import (
	"fmt"

	"github.com/bcc3d/bcc/container/sequential"
	"github.com/bcc3d/bcc/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bcc-recover <in> <out>",
	Short: "Recover a damaged sequential container file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := sequential.Recover(args[0], args[1])
		if err != nil {
			cli.Fatal(cli.ExitCodeFor(err), "bcc-recover: %v", err)
		}

		fmt.Printf("kept %d block(s), %d entries; dropped %d block(s)\n", stats.BlocksKept, stats.EntriesKept, stats.BlocksDropped)

		if stats.BlocksDropped > 0 {
			cli.Fatal(cli.ExitPartialRecovery, "bcc-recover: partial recovery, %d block(s) dropped", stats.BlocksDropped)
		}

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.Fatal(cli.ExitInvalidFormat, "bcc-recover: %v", err)
	}
}
