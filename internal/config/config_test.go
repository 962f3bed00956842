package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFirstRunCreatesTemplatesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOURNAL_DB_PATH", "")
	t.Setenv("JOURNAL_IMPORT_STRATEGY", "")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("first-run load failed: %v", err)
	}

	for _, name := range []string{"config.toml", "credentials.toml", "inference.toml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("template %s not created: %v", name, err)
		}
	}

	if cfg.Journal.MinTradesAnalysis != 3 {
		t.Errorf("MinTradesAnalysis = %d, want 3", cfg.Journal.MinTradesAnalysis)
	}
	if cfg.Import.SampleRows != 100 {
		t.Errorf("SampleRows = %d, want 100", cfg.Import.SampleRows)
	}
	if cfg.Import.Strategy != "deterministic" {
		t.Errorf("Strategy = %q, want deterministic", cfg.Import.Strategy)
	}
	if cfg.Journal.DBPath != filepath.Join(dir, "journal.db") {
		t.Errorf("DBPath = %q, want default under config dir", cfg.Journal.DBPath)
	}
	if cfg.Inference.Model == "" {
		t.Error("inference model default not applied")
	}
}

func TestLoadExistingConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOURNAL_DB_PATH", "")
	t.Setenv("JOURNAL_IMPORT_STRATEGY", "")
	content := `
[journal]
db_path = "/tmp/custom.db"
min_trades_analysis = 5

[import]
sample_rows = 25
strategy = "llm"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Journal.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q, want /tmp/custom.db", cfg.Journal.DBPath)
	}
	if cfg.Journal.MinTradesAnalysis != 5 {
		t.Errorf("MinTradesAnalysis = %d, want 5", cfg.Journal.MinTradesAnalysis)
	}
	if cfg.Import.SampleRows != 25 {
		t.Errorf("SampleRows = %d, want 25", cfg.Import.SampleRows)
	}
	if cfg.Import.Strategy != "llm" {
		t.Errorf("Strategy = %q, want llm", cfg.Import.Strategy)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("JOURNAL_DB_PATH", "/tmp/env.db")
	t.Setenv("JOURNAL_IMPORT_STRATEGY", "llm")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.HasInference() {
		t.Error("HasInference = false with OPENAI_API_KEY set")
	}
	if cfg.Journal.DBPath != "/tmp/env.db" {
		t.Errorf("DBPath = %q, want /tmp/env.db", cfg.Journal.DBPath)
	}
	if cfg.Import.Strategy != "llm" {
		t.Errorf("Strategy = %q, want llm", cfg.Import.Strategy)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Journal: JournalConfig{MinTradesAnalysis: 3},
		Import:  ImportConfig{SampleRows: 100, Strategy: "deterministic"},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min trades", func(c *Config) { c.Journal.MinTradesAnalysis = 0 }},
		{"zero sample rows", func(c *Config) { c.Import.SampleRows = 0 }},
		{"unknown strategy", func(c *Config) { c.Import.Strategy = "psychic" }},
		{"temperature out of range", func(c *Config) { c.Inference.Temperature = 3.0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
