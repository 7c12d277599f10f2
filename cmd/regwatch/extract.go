package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/regwatch-go/pkg/regwatch"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/config"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/events"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/moment"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/output"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/parser"
)

type extractOptions struct {
	outputPath     string
	pretty         bool
	lookback       int
	maxRows        int
	zone           string
	combine        string
	missingColumns string
}

func newExtractCommand() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [registry.xlsx]",
		Short: "Print the active records of a registry workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().IntVar(&opts.lookback, "lookback", parser.DefaultLookbackDays, "Drop rows with a bidding date older than N days (0 disables)")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", parser.MaxRows, "Number of worksheet rows to scan")
	cmd.Flags().StringVar(&opts.zone, "zone", "Z", "Offset written on timestamps (Z, +03:00, ...)")
	cmd.Flags().StringVar(&opts.combine, "combine", string(moment.CombineSum), "Date and time cell combination: sum or replace")
	cmd.Flags().StringVar(&opts.missingColumns, "missing-columns", string(regwatch.MissingColumnsWarn), "Fields without a defined name: warn or fail")

	return cmd
}

func (o *extractOptions) options() (regwatch.Options, error) {
	opts := regwatch.DefaultOptions()

	zone, err := moment.ParseZone(o.zone)
	if err != nil {
		return opts, err
	}
	combine, err := moment.ParseCombinePolicy(o.combine)
	if err != nil {
		return opts, err
	}
	missing, err := regwatch.ParseMissingColumns(o.missingColumns)
	if err != nil {
		return opts, err
	}
	if o.lookback < 0 {
		return opts, fmt.Errorf("invalid lookback: %d", o.lookback)
	}

	opts.Zone = zone
	opts.Combine = combine
	opts.MissingColumns = missing
	opts.LookbackDays = o.lookback
	opts.MaxRows = o.maxRows
	return opts, nil
}

func runExtract(cmd *cobra.Command, o *extractOptions, inputPath string) error {
	opts, err := o.options()
	if err != nil {
		return err
	}

	logger := setupLogger(os.Stderr, os.Getenv(config.EnvLogLevel), os.Getenv(config.EnvEnvironment) == config.EnvProduction)
	opts.Sink = events.Zerolog(logger)

	records, err := regwatch.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	jsonData, err := output.RecordsToJSON(records, o.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	return writeOutput(cmd, o.outputPath, jsonData)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
