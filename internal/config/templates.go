package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trading Journal Configuration

[journal]
# Path to the journal database (defaults to <config dir>/journal.db)
db_path = ""
# Minimum number of trades before analysis can run
min_trades_analysis = 3

[import]
# Maximum rows shown to the model when inferring a column mapping
sample_rows = 100
# Column mapping strategy: "deterministic" or "llm"
strategy = "deterministic"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
`

const credentialsTemplate = `# Trading Journal Credentials
# WARNING: Keep this file secure! Do not commit to version control.

[openai]
api_key = ""
`

const inferenceTemplate = `# Trading Journal Inference Configuration

# LLM model to use for column mapping and summaries
model = "gpt-4o-mini"
# Temperature for LLM responses (0.0 - 2.0)
temperature = 0.0
# Maximum tokens for LLM responses
max_tokens = 4096
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}

func createTemplateInferenceConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "inference.toml")
	if err := os.WriteFile(path, []byte(inferenceTemplate), 0644); err != nil {
		return fmt.Errorf("writing inference template: %w", err)
	}

	return nil
}
