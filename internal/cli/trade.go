// Package cli provides the command-line interface for the advisory application.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stock-advisor/internal/logging"
	"stock-advisor/internal/models"
	"stock-advisor/pkg/utils"
)

// addTradeCommands adds ledger commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBuyCmd(app))
	rootCmd.AddCommand(newSellCmd(app))
	rootCmd.AddCommand(newPositionCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newPnLCmd(app))
}

func newBuyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <code> <shares> <price>",
		Short: "Record a buy trade",
		Long: `Record a buy trade for an instrument.

The position's weighted-average cost basis is recomputed from the full
trade history after every recorded trade.`,
		Example: `  advisor buy AAPL 500 20.00
  advisor buy AAPL 500 20.14 --commission 5 --date 2026-08-12
  advisor buy MSFT 100 410.55 --note "quarterly allocation"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordTrade(cmd, app, models.ActionBuy, args)
		},
	}
	addTradeFlags(cmd)
	return cmd
}

func newSellCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell <code> <shares> <price>",
		Short: "Record a sell trade",
		Long: `Record a sell trade for an instrument.

Selling reduces the cost basis proportionally to the fraction of shares
sold. A sell against an empty position is recorded but has no effect on
the derived position.`,
		Example: `  advisor sell AAPL 500 19.88 --commission 5
  advisor sell MSFT 50 420.00 --date 2026-08-20`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordTrade(cmd, app, models.ActionSell, args)
		},
	}
	addTradeFlags(cmd)
	return cmd
}

func addTradeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("commission", "c", 0, "commission paid on the trade")
	cmd.Flags().StringP("date", "d", "", "trade date (YYYY-MM-DD, default: today)")
	cmd.Flags().String("note", "", "free-form trade description")
}

func recordTrade(cmd *cobra.Command, app *App, action models.Action, args []string) error {
	output := NewOutput(cmd)

	code := strings.ToUpper(args[0])
	shares, err := strconv.Atoi(args[1])
	if err != nil {
		output.Error("Invalid share count: %s", args[1])
		return fmt.Errorf("invalid share count")
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		output.Error("Invalid price: %s", args[2])
		return fmt.Errorf("invalid price")
	}

	commission, _ := cmd.Flags().GetFloat64("commission")
	note, _ := cmd.Flags().GetString("note")
	dateStr, _ := cmd.Flags().GetString("date")

	date := time.Now()
	if dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			output.Error("Invalid date %q, expected YYYY-MM-DD", dateStr)
			return err
		}
	}

	trade := models.Trade{
		Date:        date,
		Action:      action,
		Price:       price,
		Shares:      shares,
		Commission:  commission,
		Description: note,
	}

	if err := app.Portfolio.Append(code, trade); err != nil {
		output.Error("Failed to record trade: %v", err)
		return err
	}

	if app.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Store.SaveTrade(ctx, code, trade); err != nil {
			app.Logger.Warn().Err(err).Str("code", code).Msg("Failed to persist trade")
			output.Warning("Trade recorded in memory only: %v", err)
		}
	}

	logging.LogTrade(app.Logger, code, string(action), shares, price)

	l, _ := app.Portfolio.Get(code)
	summary := l.Summary()
	if summary.CurrentShares < 0 {
		app.Logger.Warn().Str("code", code).Int("shares", summary.CurrentShares).Msg("Position is short after sell")
		output.Warning("Position in %s is now short (%d shares)", code, summary.CurrentShares)
	}

	if output.IsJSON() {
		return output.JSON(summary)
	}

	output.Success("✓ Recorded %s of %s %s @ %s", action, utils.FormatShares(shares), code, utils.FormatCurrency(price))
	renderPosition(output, summary)
	return nil
}

func newPositionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "position <code>",
		Short: "Show the current position for an instrument",
		Example: `  advisor position AAPL
  advisor position AAPL --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			code := strings.ToUpper(args[0])

			l, err := app.Portfolio.Get(code)
			if err != nil {
				output.Error("No trades recorded for %s", code)
				return err
			}

			summary := l.Summary()
			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("%s", code)
			renderPosition(output, summary)
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <code>",
		Short: "Show the trade history for an instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			code := strings.ToUpper(args[0])

			l, err := app.Portfolio.Get(code)
			if err != nil {
				output.Error("No trades recorded for %s", code)
				return err
			}

			history := l.History()
			if output.IsJSON() {
				return output.JSON(history)
			}

			output.Bold("%s - %d trades", code, len(history))
			output.Println()

			table := NewTable(output, "DATE", "ACTION", "SHARES", "PRICE", "AMOUNT", "COMMISSION", "NOTE")
			for _, h := range history {
				action := output.Green(strings.ToUpper(string(h.Action)))
				if h.Action == models.ActionSell {
					action = output.Red(strings.ToUpper(string(h.Action)))
				}
				table.AddRow(
					h.Date.Format("2006-01-02"),
					action,
					utils.FormatShares(h.Shares),
					utils.FormatCurrency(h.Price),
					utils.FormatCurrency(h.Amount),
					utils.FormatCurrency(h.Commission),
					h.Description,
				)
			}
			table.Render()
			return nil
		},
	}
}

func newPnLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pl <code> <current-price>",
		Short: "Compute profit and loss at a given price",
		Example: `  advisor pl AAPL 20.50
  advisor pl MSFT 415.00 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			code := strings.ToUpper(args[0])

			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				output.Error("Invalid price: %s", args[1])
				return fmt.Errorf("invalid price")
			}

			l, err := app.Portfolio.Get(code)
			if err != nil {
				output.Error("No trades recorded for %s", code)
				return err
			}

			pl := l.ProfitLoss(price)
			if output.IsJSON() {
				return output.JSON(pl)
			}

			output.Bold("%s @ %s", code, utils.FormatCurrency(price))
			renderProfitLoss(output, pl)
			return nil
		},
	}
}
