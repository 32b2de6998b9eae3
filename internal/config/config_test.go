package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
corpus:
  tsv: data/sms.tsv
split:
  validation: 0.2
  test: 0.15
  seed: 42
model:
  alpha: 0.5
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Corpus.TSV != "data/sms.tsv" {
		t.Errorf("Corpus.TSV = %q, want data/sms.tsv", cfg.Corpus.TSV)
	}
	if cfg.Split.Validation != 0.2 || cfg.Split.Test != 0.15 {
		t.Errorf("Split = %+v, want 0.2/0.15", cfg.Split)
	}
	if cfg.Split.Seed == nil || *cfg.Split.Seed != 42 {
		t.Errorf("Split.Seed = %v, want 42", cfg.Split.Seed)
	}
	if cfg.Model.Alpha != 0.5 {
		t.Errorf("Model.Alpha = %v, want 0.5", cfg.Model.Alpha)
	}
	// Unset keys keep their defaults.
	if cfg.Model.PositiveLabel != "spam" {
		t.Errorf("Model.PositiveLabel = %q, want default spam", cfg.Model.PositiveLabel)
	}
	if cfg.Sweep != Default().Sweep {
		t.Errorf("Sweep = %+v, want defaults", cfg.Sweep)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel() error = %v", err)
	}
	if level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want DEBUG", level)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "model:\n  alpah: 2\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no corpus", func(c *Config) { c.Corpus = CorpusConfig{Spam: "spam.txt"} }, "corpus"},
		{"line corpus ok", func(c *Config) { c.Corpus = CorpusConfig{Spam: "s.txt", Ham: "h.txt"} }, ""},
		{"split sum", func(c *Config) { c.Split.Validation, c.Split.Test = 0.6, 0.4 }, "split"},
		{"negative split", func(c *Config) { c.Split.Test = -0.1 }, "split"},
		{"zero alpha", func(c *Config) { c.Model.Alpha = 0 }, "alpha"},
		{"empty positive label", func(c *Config) { c.Model.PositiveLabel = " " }, "positive_label"},
		{"bad sweep", func(c *Config) { c.Sweep.Step = 0 }, "sweep"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Model.Alpha = -1
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"alpha", "log"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %v, missing %q", err, want)
		}
	}
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "testdata", "nb.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if cfg.Split.Seed == nil || *cfg.Split.Seed != 42 {
		t.Errorf("Split.Seed = %v, want 42", cfg.Split.Seed)
	}
	if cfg.Split.Validation != 0.2 {
		t.Errorf("Split.Validation = %v, want 0.2", cfg.Split.Validation)
	}
}
