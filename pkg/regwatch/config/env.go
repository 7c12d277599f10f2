package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ukaji3/regwatch-go/pkg/regwatch"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/moment"
)

// Environment variable names.
const (
	EnvWorkbookPath   = "REG_WORKBOOK_PATH"
	EnvDeliveryURL    = "TGBOT_APP_URL"
	EnvSnapshotPath   = "REG_SNAPSHOT_PATH"
	EnvPollInterval   = "REG_POLL_INTERVAL"
	EnvLookbackDays   = "REG_LOOKBACK_DAYS"
	EnvMaxRows        = "REG_MAX_ROWS"
	EnvTimezone       = "REG_TIMEZONE"
	EnvCombine        = "REG_DATETIME_COMBINE"
	EnvMissingColumns = "REG_MISSING_COLUMNS"
	EnvKeepSnapshot   = "REG_KEEP_SNAPSHOT"
	EnvHTTPTimeout    = "REG_HTTP_TIMEOUT"
	EnvLogLevel       = "LOGLEVEL"
	EnvEnvironment    = "ENV"
)

// LookupFunc returns the value of a variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// FromEnv loads a .env file from the working directory if one exists, then
// reads the configuration from the process environment. Variables already
// set in the environment take precedence over the file.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromEnvFile reads variables from the dotenv file at path. Variables set in
// the process environment take precedence over the file.
func FromEnvFile(path string) (Config, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	})
}

// FromLookup builds a validated Config from variables returned by lookup.
// Empty values count as unset.
func FromLookup(lookup LookupFunc) (Config, error) {
	cfg := Default()
	r := envReader{lookup: lookup}

	r.str(EnvWorkbookPath, &cfg.WorkbookPath)
	r.str(EnvDeliveryURL, &cfg.DeliveryURL)
	r.str(EnvSnapshotPath, &cfg.SnapshotPath)
	r.str(EnvLogLevel, &cfg.LogLevel)
	r.str(EnvEnvironment, &cfg.Environment)
	r.integer(EnvLookbackDays, &cfg.LookbackDays)
	r.integer(EnvMaxRows, &cfg.MaxRows)

	if v, ok := r.get(EnvPollInterval); ok {
		d, err := parseDuration(v)
		r.check(EnvPollInterval, err)
		cfg.PollInterval = d
	}
	if v, ok := r.get(EnvHTTPTimeout); ok {
		d, err := parseDuration(v)
		r.check(EnvHTTPTimeout, err)
		cfg.HTTPTimeout = d
	}
	if v, ok := r.get(EnvTimezone); ok {
		z, err := moment.ParseZone(v)
		r.check(EnvTimezone, err)
		cfg.Zone = z
	}
	if v, ok := r.get(EnvCombine); ok {
		p, err := moment.ParseCombinePolicy(v)
		r.check(EnvCombine, err)
		cfg.Combine = p
	}
	if v, ok := r.get(EnvMissingColumns); ok {
		p, err := regwatch.ParseMissingColumns(v)
		r.check(EnvMissingColumns, err)
		cfg.MissingColumns = p
	}
	if v, ok := r.get(EnvKeepSnapshot); ok {
		keep, err := strconv.ParseBool(v)
		r.check(EnvKeepSnapshot, err)
		cfg.RemoveSnapshotOnExit = !keep
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envReader struct {
	lookup LookupFunc
	errs   []error
}

func (r *envReader) get(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *envReader) check(key string, err error) {
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
}

func (r *envReader) str(key string, dst *string) {
	if v, ok := r.get(key); ok {
		*dst = v
	}
}

func (r *envReader) integer(key string, dst *int) {
	if v, ok := r.get(key); ok {
		n, err := strconv.Atoi(v)
		r.check(key, err)
		*dst = n
	}
}
