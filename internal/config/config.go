// Package config loads settings for the command-line tools.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config is the YAML layout shared by nb-cli and nb-bench.
type Config struct {
	Corpus CorpusConfig `yaml:"corpus"`
	Split  SplitConfig  `yaml:"split"`
	Model  ModelConfig  `yaml:"model"`
	Sweep  SweepConfig  `yaml:"sweep"`
	Log    LogConfig    `yaml:"log"`
}

// CorpusConfig points at the training data: either one TSV file or a pair
// of one-message-per-line files.
type CorpusConfig struct {
	TSV  string `yaml:"tsv"`
	Spam string `yaml:"spam"`
	Ham  string `yaml:"ham"`
}

// SplitConfig holds the partition fractions. A nil Seed draws a random one.
type SplitConfig struct {
	Validation float64 `yaml:"validation"`
	Test       float64 `yaml:"test"`
	Seed       *int64  `yaml:"seed"`
}

// ModelConfig holds classifier settings.
type ModelConfig struct {
	Alpha         float64 `yaml:"alpha"`
	PositiveLabel string  `yaml:"positive_label"`
	Workers       int     `yaml:"workers"`
}

// SweepConfig bounds the alpha sweep.
type SweepConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Corpus: CorpusConfig{TSV: "testdata/sms.tsv"},
		Split:  SplitConfig{Validation: 0.1, Test: 0.1},
		Model:  ModelConfig{Alpha: 1, PositiveLabel: "spam", Workers: 4},
		Sweep:  SweepConfig{Min: 0.1, Max: 2.0, Step: 0.1},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Corpus.TSV == "" && (c.Corpus.Spam == "" || c.Corpus.Ham == "") {
		errs = append(errs, errors.New("corpus: need tsv or both spam and ham"))
	}
	if !(c.Split.Validation >= 0) || !(c.Split.Test >= 0) || !(c.Split.Validation+c.Split.Test < 1) {
		errs = append(errs, fmt.Errorf("split: fractions %v and %v must be non-negative and sum below 1",
			c.Split.Validation, c.Split.Test))
	}
	if !(c.Model.Alpha > 0) {
		errs = append(errs, fmt.Errorf("model: alpha %v must be positive", c.Model.Alpha))
	}
	if strings.TrimSpace(c.Model.PositiveLabel) == "" {
		errs = append(errs, errors.New("model: positive_label is empty"))
	}
	if c.Sweep.Step <= 0 || c.Sweep.Min <= 0 || c.Sweep.Min >= c.Sweep.Max {
		errs = append(errs, fmt.Errorf("sweep: invalid range [%v, %v) step %v", c.Sweep.Min, c.Sweep.Max, c.Sweep.Step))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log: %w", err)
	}
	return level, nil
}
