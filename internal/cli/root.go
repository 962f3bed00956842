// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trading-journal/internal/config"
	"trading-journal/internal/inference"
	"trading-journal/internal/journal"
	"trading-journal/internal/logging"
	"trading-journal/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-30"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Store     store.Store
	Journal   *journal.Journal
	LLMClient inference.Client
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize SQLite store
	dataStore, err := store.NewSQLiteStore(cfg.Journal.DBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, journal will not persist")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Journal.DBPath).Msg("SQLite store initialized")
	}

	// Load the journal collection; a store failure falls back to empty
	app.Journal = journal.Open(context.Background(), app.Store, cfg.Journal.MinTradesAnalysis, logger)

	// Initialize LLM client if an OpenAI API key is available
	if cfg.HasInference() {
		app.LLMClient = inference.NewOpenAIClient(
			cfg.Credentials.OpenAI.APIKey,
			cfg.Inference.Model,
			cfg.Inference.Temperature,
			cfg.Inference.MaxTokens,
		)
		logger.Debug().Str("model", cfg.Inference.Model).Msg("OpenAI LLM client initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading Journal - record trades and analyze performance",
		Long: `Trading Journal is a personal trade log with performance analytics.

Record trades manually or bulk-import them from spreadsheets with flexible
column layouts, then derive performance statistics and chart-ready series.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trading-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addImportCommands(rootCmd, app)
	addAnalyzeCommands(rootCmd, app)
	addReportCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Trading Journal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Journal Configuration")
	output.Printf("  Database:         %s\n", cfg.Journal.DBPath)
	output.Printf("  Min Trades:       %d\n", cfg.Journal.MinTradesAnalysis)
	output.Println()

	output.Bold("Import Configuration")
	output.Printf("  Strategy:         %s\n", cfg.Import.Strategy)
	output.Printf("  Sample Rows:      %d\n", cfg.Import.SampleRows)
	output.Println()

	output.Bold("Inference Configuration")
	output.Printf("  Model:            %s\n", cfg.Inference.Model)
	output.Printf("  Temperature:      %.1f\n", cfg.Inference.Temperature)
	output.Printf("  API Key Set:      %v\n", cfg.HasInference())

	return nil
}
