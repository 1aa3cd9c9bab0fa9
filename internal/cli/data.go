// Package cli provides the command-line interface for the advisory application.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stock-advisor/internal/store"
)

// addDataCommands adds import/export commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newListCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <code>",
		Short: "Export an instrument's trades to CSV",
		Example: `  advisor export AAPL
  advisor export AAPL --out aapl-trades.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			code := strings.ToUpper(args[0])

			l, err := app.Portfolio.Get(code)
			if err != nil {
				output.Error("No trades recorded for %s", code)
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")
			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					output.Error("Failed to create %s: %v", outPath, err)
					return err
				}
				defer f.Close()
				w = f
			}

			if err := store.ExportTradesCSV(w, l.Trades()); err != nil {
				output.Error("Export failed: %v", err)
				return err
			}

			if outPath != "" {
				output.Success("✓ Exported %d trades to %s", l.Len(), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "output file (default: stdout)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trades or price history from CSV",
	}

	cmd.AddCommand(newImportTradesCmd(app))
	cmd.AddCommand(newImportPricesCmd(app))

	return cmd
}

func newImportTradesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trades <code> <file>",
		Short: "Import trades for an instrument from a CSV file",
		Long: `Import trades from a CSV file with columns
date,action,price,shares,commission,description.

Imported trades are appended to the instrument's ledger and the
position is recomputed from the full history.`,
		Example: `  advisor import trades AAPL aapl-trades.csv`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			code := strings.ToUpper(args[0])

			f, err := os.Open(args[1])
			if err != nil {
				output.Error("Failed to open %s: %v", args[1], err)
				return err
			}
			defer f.Close()

			trades, err := store.ImportTradesCSV(f)
			if err != nil {
				output.Error("Import failed: %v", err)
				return err
			}

			imported := 0
			for _, t := range trades {
				if err := app.Portfolio.Append(code, t); err != nil {
					output.Warning("Skipping invalid trade: %v", err)
					continue
				}
				imported++
			}

			if app.Store != nil && imported > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				l, _ := app.Portfolio.Get(code)
				if err := app.Store.ReplaceLedger(ctx, code, l.Trades()); err != nil {
					output.Warning("Trades imported in memory only: %v", err)
				}
			}

			output.Success("✓ Imported %d of %d trades for %s", imported, len(trades), code)
			return nil
		},
	}
}

func newImportPricesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prices <code> <file>",
		Short: "Import price history for an instrument from a CSV file",
		Long: `Import price history from a CSV file with columns date,price,volume
into the local price cache. Cached prices are used by 'advisor analyze'
when no explicit price file is given.`,
		Example: `  advisor import prices AAPL aapl-prices.csv`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			code := strings.ToUpper(args[0])

			if app.Store == nil {
				output.Error("Price cache unavailable: store not initialized")
				return fmt.Errorf("store not initialized")
			}

			f, err := os.Open(args[1])
			if err != nil {
				output.Error("Failed to open %s: %v", args[1], err)
				return err
			}
			defer f.Close()

			points, err := store.ImportPricesCSV(f)
			if err != nil {
				output.Error("Import failed: %v", err)
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := app.Store.SavePrices(ctx, code, points); err != nil {
				output.Error("Failed to cache prices: %v", err)
				return err
			}

			output.Success("✓ Cached %d price points for %s", len(points), code)
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all instruments with recorded trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			codes := app.Portfolio.Codes()
			if output.IsJSON() {
				return output.JSON(map[string][]string{"instruments": codes})
			}

			if len(codes) == 0 {
				output.Dim("No instruments recorded.")
				return nil
			}

			output.Bold("%d instruments", len(codes))
			for _, code := range codes {
				l, err := app.Portfolio.Get(code)
				if err != nil {
					continue
				}
				output.Printf("  %s (%d trades)\n", code, l.Len())
			}
			return nil
		},
	}
}
