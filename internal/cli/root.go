// Package cli provides the command-line interface for the advisory application.
package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stock-advisor/internal/analysis/advisor"
	"stock-advisor/internal/config"
	"stock-advisor/internal/logging"
	"stock-advisor/internal/portfolio"
	"stock-advisor/internal/store"
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
	Portfolio *portfolio.Portfolio
	Advisor   *advisor.Advisor
	Store     store.LedgerStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:    cfg,
		Logger:    logger,
		Portfolio: portfolio.New(),
		Advisor: advisor.New(advisor.Config{
			ShortPeriod:       cfg.Advisory.ShortPeriod,
			LongPeriod:        cfg.Advisory.LongPeriod,
			OscillatorPeriod:  cfg.Advisory.OscillatorPeriod,
			ProfitTakingRate:  cfg.Advisory.ProfitTakingRate,
			RiskControlRate:   cfg.Advisory.RiskControlRate,
			VolatilityCeiling: cfg.Advisory.VolatilityCeiling,
		}),
	}

	// Initialize SQLite store and replay persisted ledgers
	dataStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Database.Path).Msg("SQLite store initialized")
		if err := app.loadPortfolio(); err != nil {
			logger.Warn().Err(err).Msg("Failed to load persisted ledgers")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "advisor",
		Short: "Stock Advisor - trade ledger and technical advisory CLI",
		Long: `Stock Advisor is a trade ledger, cost-basis tracker, and technical
advisory CLI for stock positions.

It records buy and sell trades per instrument, tracks weighted-average
cost basis, computes profit and loss, and generates trading advice from
moving averages, momentum, volatility, and drawdown analysis.

Use 'advisor help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/stock-advisor)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addAnalysisCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addServeCommands(rootCmd, app)
	addDemoCommands(rootCmd, app)

	return rootCmd
}

// loadPortfolio replays every persisted ledger into memory.
func (a *App) loadPortfolio() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ledgers, err := a.Store.LoadPortfolio(ctx)
	if err != nil {
		return err
	}
	for code, trades := range ledgers {
		for _, t := range trades {
			if err := a.Portfolio.Append(code, t); err != nil {
				a.Logger.Warn().Err(err).Str("code", code).Msg("Skipping invalid persisted trade")
			}
		}
	}
	return nil
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
				output.Printf("Stock Advisor v%s\n", Version)
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
	output.Bold("Server Configuration")
	output.Printf("  Address:         %s\n", cfg.Server.Addr)
	output.Printf("  Metrics:         %v\n", cfg.Server.Metrics)
	output.Println()

	output.Bold("Database Configuration")
	output.Printf("  Path:            %s\n", cfg.Database.Path)
	output.Println()

	output.Bold("Advisory Configuration")
	output.Printf("  Short Period:    %d\n", cfg.Advisory.ShortPeriod)
	output.Printf("  Long Period:     %d\n", cfg.Advisory.LongPeriod)
	output.Printf("  Oscillator:      %d\n", cfg.Advisory.OscillatorPeriod)
	output.Printf("  Take Profit At:  %.1f%%\n", cfg.Advisory.ProfitTakingRate)
	output.Printf("  Risk Control At: %.1f%%\n", cfg.Advisory.RiskControlRate)
	output.Printf("  Vol Ceiling:     %.2f\n", cfg.Advisory.VolatilityCeiling)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)

	return nil
}
