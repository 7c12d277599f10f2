package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/diff"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/output"
)

type diffOptions struct {
	outputPath string
	pretty     bool
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff [old.json] [new.json]",
		Short: "Print the changeset between two record snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func readRecords(path string) ([]models.Purchase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := output.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func runDiff(cmd *cobra.Command, o *diffOptions, oldPath, newPath string) error {
	old, err := readRecords(oldPath)
	if err != nil {
		return err
	}
	fresh, err := readRecords(newPath)
	if err != nil {
		return err
	}

	cs := diff.Compute(old, fresh)
	jsonData, err := output.ChangesetToJSON(cs, o.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "added: %d, changed: %d, deactivated: %d\n", cs.Added, cs.Changed, cs.Deactivated)
	return writeOutput(cmd, o.outputPath, jsonData)
}
