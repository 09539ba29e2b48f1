// Command bcc-validate checks a sequential container file for
// structural and checksum problems without modifying it.
package main

import (
	"fmt"
	"os"

	"github.com/bcc3d/bcc/container/sequential"
	"github.com/bcc3d/bcc/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bcc-validate <file>",
	Short: "Validate a sequential container file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := sequential.Validate(args[0])
		if err != nil {
			cli.Fatal(cli.ExitCodeFor(err), "bcc-validate: %v", err)
		}

		if len(issues) == 0 {
			fmt.Println("ok")
			return nil
		}

		cli.PrintIssues(os.Stderr, issues)
		os.Exit(cli.ExitInvalidFormat)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.Fatal(cli.ExitInvalidFormat, "bcc-validate: %v", err)
	}
}
