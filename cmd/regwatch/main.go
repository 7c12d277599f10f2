// Package main provides the CLI entry point for regwatch.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regwatch",
		Short: "Watch a purchase registry workbook and deliver changes",
		Long: `regwatch reads active purchases from an xlsx registry through its
defined names and posts the records that changed since the last check.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newWatchCommand())
	cmd.AddCommand(newExtractCommand())
	cmd.AddCommand(newDiffCommand())

	return cmd
}
