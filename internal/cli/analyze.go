// Package cli provides the command-line interface for the advisory application.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stock-advisor/internal/logging"
	"stock-advisor/internal/models"
	"stock-advisor/internal/store"
)

// addAnalysisCommands adds advisory commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newSummaryCmd(app))
}

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <code> <current-price>",
		Short: "Generate trading advice for an instrument",
		Long: `Generate trading advice for an instrument from its position, profit and
loss, and recent price history.

The analysis covers:
- Trend signal from short/long moving average crossovers
- Momentum oscillator signal (overbought/oversold zones)
- Annualized volatility of daily returns
- Maximum drawdown over the price window

Price history is read from the local price cache unless --prices is
given. With no history at all, the analysis degrades to the current
price alone and trend signals report insufficient data.`,
		Example: `  advisor analyze AAPL 20.50
  advisor analyze AAPL 20.50 --prices prices.csv
  advisor analyze MSFT 415.00 --json`,
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

			prices, err := resolvePriceSeries(cmd, app, code, price)
			if err != nil {
				output.Error("Failed to load price history: %v", err)
				return err
			}

			adv := app.Advisor.Advise(l.Summary(), l.ProfitLoss(price), prices)
			logging.LogAdvice(app.Logger, code, string(adv.RiskLevel), len(adv.Items))

			if output.IsJSON() {
				return output.JSON(adv)
			}

			renderAdvice(output, code, adv)
			return nil
		},
	}

	cmd.Flags().StringP("prices", "p", "", "CSV file with price history (date,price,volume)")

	return cmd
}

// resolvePriceSeries picks the analysis series: a CSV file if given, then
// the cached price history, then just the current price.
func resolvePriceSeries(cmd *cobra.Command, app *App, code string, currentPrice float64) ([]float64, error) {
	pricesPath, _ := cmd.Flags().GetString("prices")
	if pricesPath != "" {
		f, err := os.Open(pricesPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		points, err := store.ImportPricesCSV(f)
		if err != nil {
			return nil, err
		}
		return models.Prices(points), nil
	}

	if app.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		points, err := app.Store.GetPrices(ctx, code, time.Time{}, time.Time{})
		if err == nil && len(points) > 0 {
			return models.Prices(points), nil
		}
	}

	return []float64{currentPrice}, nil
}

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the portfolio summary across all instruments",
		Long: `Roll up every instrument's position and profit/loss into a portfolio
summary. Current prices are supplied per instrument; an instrument
without a price is valued at zero.`,
		Example: `  advisor summary --price AAPL=20.50 --price MSFT=415.00
  advisor summary --price AAPL=20.50 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			priceArgs, _ := cmd.Flags().GetStringSlice("price")
			prices := make(map[string]float64, len(priceArgs))
			for _, arg := range priceArgs {
				parts := strings.SplitN(arg, "=", 2)
				if len(parts) != 2 {
					output.Error("Invalid price %q, expected CODE=PRICE", arg)
					return fmt.Errorf("invalid price argument")
				}
				value, err := strconv.ParseFloat(parts[1], 64)
				if err != nil {
					output.Error("Invalid price value %q", parts[1])
					return err
				}
				prices[strings.ToUpper(parts[0])] = value
			}

			summary := app.Portfolio.Summary(prices)
			if output.IsJSON() {
				return output.JSON(summary)
			}

			renderPortfolioSummary(output, summary)
			return nil
		},
	}

	cmd.Flags().StringSlice("price", nil, "current price as CODE=PRICE (repeatable)")

	return cmd
}
