// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal     JournalConfig   `mapstructure:"journal"`
	Import      ImportConfig    `mapstructure:"import"`
	UI          UIConfig        `mapstructure:"ui"`
	Credentials Credentials     `mapstructure:"-"` // Loaded separately
	Inference   InferenceConfig `mapstructure:"-"` // Loaded separately
}

// JournalConfig holds journal-related configuration.
type JournalConfig struct {
	DBPath            string `mapstructure:"db_path"`
	MinTradesAnalysis int    `mapstructure:"min_trades_analysis"`
}

// ImportConfig holds bulk-import configuration.
type ImportConfig struct {
	SampleRows int    `mapstructure:"sample_rows"` // rows shown to the model when mapping columns
	Strategy   string `mapstructure:"strategy"`    // "deterministic" or "llm"
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// InferenceConfig holds external model configuration.
type InferenceConfig struct {
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trading-journal"
	}
	return filepath.Join(home, ".config", "trading-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Load inference config
	if err := loadInferenceConfig(configDir, &cfg.Inference); err != nil {
		return nil, fmt.Errorf("loading inference.toml: %w", err)
	}

	// An empty db_path in the config file means "use the default location"
	if cfg.Journal.DBPath == "" {
		cfg.Journal.DBPath = filepath.Join(configDir, "journal.db")
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("journal.db_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("journal.min_trades_analysis", 3)
	v.SetDefault("import.sample_rows", 100)
	v.SetDefault("import.strategy", "deterministic")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template and fall through to the
			// defaults so the first run still gets a valid configuration.
			if err := createTemplateConfig(configDir, name); err != nil {
				return err
			}
		} else {
			return err
		}
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func loadInferenceConfig(configDir string, inf *InferenceConfig) error {
	v := viper.New()
	v.SetConfigName("inference")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// Set defaults
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("temperature", 0.0)
	v.SetDefault("max_tokens", 4096)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateInferenceConfig(configDir); err != nil {
				return err
			}
		} else {
			return err
		}
	}

	return v.Unmarshal(inf)
}

func applyEnvOverrides(cfg *Config) {
	// OpenAI credentials
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}

	// Journal database location
	if v := os.Getenv("JOURNAL_DB_PATH"); v != "" {
		cfg.Journal.DBPath = v
	}

	// Import strategy
	if v := os.Getenv("JOURNAL_IMPORT_STRATEGY"); v != "" {
		cfg.Import.Strategy = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.MinTradesAnalysis < 1 {
		return fmt.Errorf("min_trades_analysis must be at least 1")
	}

	if c.Import.SampleRows < 1 {
		return fmt.Errorf("sample_rows must be at least 1")
	}

	if c.Import.Strategy != "deterministic" && c.Import.Strategy != "llm" {
		return fmt.Errorf("invalid import strategy: %s (must be 'deterministic' or 'llm')", c.Import.Strategy)
	}

	if c.Inference.Temperature < 0 || c.Inference.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}

	return nil
}

// HasInference returns true if an OpenAI API key is configured.
func (c *Config) HasInference() bool {
	return c.Credentials.OpenAI.APIKey != ""
}
