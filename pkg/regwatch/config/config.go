// Package config loads watcher settings from the environment or a YAML file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/regwatch-go/pkg/regwatch"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/delivery"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/moment"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/parser"
)

const (
	// DefaultSnapshotPath is where the last delivered set is kept.
	DefaultSnapshotPath = "temp.json"
	// DefaultPollInterval is the delay between workbook checks.
	DefaultPollInterval = 30 * time.Second
	// EnvProduction switches logging to JSON output.
	EnvProduction = "production"
)

// Config holds all watcher settings.
type Config struct {
	// WorkbookPath is the registry workbook to watch.
	WorkbookPath string
	// DeliveryURL receives changesets as JSON POST requests.
	DeliveryURL string
	// SnapshotPath stores the last delivered record set.
	SnapshotPath string
	// PollInterval is the delay between modification time checks.
	PollInterval time.Duration
	// LookbackDays drops rows with older bidding dates. Zero disables it.
	LookbackDays int
	// MaxRows overrides the scanned row limit when positive.
	MaxRows int
	// Zone is the offset written on timestamps.
	Zone moment.Zone
	// Combine decides how time cells join date cells.
	Combine moment.CombinePolicy
	// MissingColumns is the policy for fields without a defined name.
	MissingColumns regwatch.MissingColumns
	// RemoveSnapshotOnExit deletes the snapshot when the watcher stops.
	RemoveSnapshotOnExit bool
	// HTTPTimeout bounds one delivery request.
	HTTPTimeout time.Duration
	// LogLevel is a zerolog level name; empty picks a default per environment.
	LogLevel string
	// Environment is "production" or anything else for development.
	Environment string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		SnapshotPath:         DefaultSnapshotPath,
		PollInterval:         DefaultPollInterval,
		LookbackDays:         parser.DefaultLookbackDays,
		Zone:                 moment.UTC,
		Combine:              moment.CombineSum,
		MissingColumns:       regwatch.MissingColumnsWarn,
		RemoveSnapshotOnExit: true,
		HTTPTimeout:          delivery.DefaultTimeout,
		Environment:          "development",
	}
}

// Production reports whether the production environment is selected.
func (c Config) Production() bool {
	return c.Environment == EnvProduction
}

// Validate checks that required settings are present and consistent.
func (c Config) Validate() error {
	var errs []error
	if c.WorkbookPath == "" {
		errs = append(errs, errors.New("workbook path is required"))
	}
	if c.DeliveryURL == "" {
		errs = append(errs, errors.New("delivery url is required"))
	} else if u, err := url.Parse(c.DeliveryURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("delivery url %q must be an absolute http(s) url", c.DeliveryURL))
	}
	if c.SnapshotPath == "" {
		errs = append(errs, errors.New("snapshot path is required"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval))
	}
	if c.LookbackDays < 0 {
		errs = append(errs, fmt.Errorf("lookback days must not be negative, got %d", c.LookbackDays))
	}
	if c.MaxRows < 0 {
		errs = append(errs, fmt.Errorf("max rows must not be negative, got %d", c.MaxRows))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout))
	}
	if _, err := moment.ParseCombinePolicy(string(c.Combine)); err != nil {
		errs = append(errs, err)
	}
	if _, err := regwatch.ParseMissingColumns(string(c.MissingColumns)); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options returns the extraction options for c.
func (c Config) Options() regwatch.Options {
	opts := regwatch.DefaultOptions()
	opts.Zone = c.Zone
	opts.Combine = c.Combine
	opts.LookbackDays = c.LookbackDays
	opts.MaxRows = c.MaxRows
	opts.MissingColumns = c.MissingColumns
	return opts
}

// parseDuration accepts Go durations ("45s", "2m") or whole seconds ("30").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(secs) * time.Second, nil
}
