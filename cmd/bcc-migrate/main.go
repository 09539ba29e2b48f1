// Command bcc-migrate converts a sequential container file from one
// major version to the next.
package main

import (
	"fmt"

	"github.com/bcc3d/bcc/container/sequential"
	"github.com/bcc3d/bcc/internal/cli"
	"github.com/spf13/cobra"
)

var (
	fromVersion int
	toVersion   int
)

var rootCmd = &cobra.Command{
	Use:   "bcc-migrate <in> <out>",
	Short: "Migrate a sequential container file between versions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if fromVersion != 1 || toVersion != 2 {
			cli.Fatal(cli.ExitUnsupportedVersion, "bcc-migrate: only --from 1 --to 2 is supported")
		}

		if err := sequential.MigrateV1ToV2(args[0], args[1]); err != nil {
			cli.Fatal(cli.ExitCodeFor(err), "bcc-migrate: %v", err)
		}

		fmt.Println("ok")
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Flags().IntVar(&fromVersion, "from", 1, "source major version")
	rootCmd.Flags().IntVar(&toVersion, "to", 2, "target major version")

	if err := rootCmd.Execute(); err != nil {
		cli.Fatal(cli.ExitInvalidFormat, "bcc-migrate: %v", err)
	}
}
