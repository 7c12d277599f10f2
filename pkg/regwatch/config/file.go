package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/regwatch-go/pkg/regwatch"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/moment"
)

// fileConfig is the YAML form of Config. Absent keys keep their defaults.
type fileConfig struct {
	WorkbookPath   string         `yaml:"workbook_path"`
	DeliveryURL    string         `yaml:"delivery_url"`
	SnapshotPath   string         `yaml:"snapshot_path"`
	PollInterval   *time.Duration `yaml:"poll_interval"`
	LookbackDays   *int           `yaml:"lookback_days"`
	MaxRows        *int           `yaml:"max_rows"`
	Timezone       string         `yaml:"timezone"`
	Combine        string         `yaml:"datetime_combine"`
	MissingColumns string         `yaml:"missing_columns"`
	KeepSnapshot   *bool          `yaml:"keep_snapshot"`
	HTTPTimeout    *time.Duration `yaml:"http_timeout"`
	LogLevel       string         `yaml:"log_level"`
	Env            string         `yaml:"env"`
}

// FromFile loads a YAML configuration file. Unknown keys are rejected.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document and validates it.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := fc.apply(Default())
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	setString(&cfg.WorkbookPath, fc.WorkbookPath)
	setString(&cfg.DeliveryURL, fc.DeliveryURL)
	setString(&cfg.SnapshotPath, fc.SnapshotPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.Environment, fc.Env)

	if fc.PollInterval != nil {
		cfg.PollInterval = *fc.PollInterval
	}
	if fc.HTTPTimeout != nil {
		cfg.HTTPTimeout = *fc.HTTPTimeout
	}
	if fc.LookbackDays != nil {
		cfg.LookbackDays = *fc.LookbackDays
	}
	if fc.MaxRows != nil {
		cfg.MaxRows = *fc.MaxRows
	}
	if fc.KeepSnapshot != nil {
		cfg.RemoveSnapshotOnExit = !*fc.KeepSnapshot
	}

	if fc.Timezone != "" {
		z, err := moment.ParseZone(fc.Timezone)
		if err != nil {
			return Config{}, fmt.Errorf("timezone: %w", err)
		}
		cfg.Zone = z
	}
	if fc.Combine != "" {
		p, err := moment.ParseCombinePolicy(fc.Combine)
		if err != nil {
			return Config{}, fmt.Errorf("datetime_combine: %w", err)
		}
		cfg.Combine = p
	}
	if fc.MissingColumns != "" {
		p, err := regwatch.ParseMissingColumns(fc.MissingColumns)
		if err != nil {
			return Config{}, fmt.Errorf("missing_columns: %w", err)
		}
		cfg.MissingColumns = p
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
