// Package cli provides the command-line interface for the advisory application.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"stock-advisor/internal/ledger"
	"stock-advisor/internal/models"
	"stock-advisor/pkg/utils"
)

// addDemoCommands adds the walkthrough command.
func addDemoCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDemoCmd(app))
}

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through a worked cost-basis example",
		Long: `Walk through a worked example of cost-basis accounting on a
throwaway in-memory ledger. Nothing is persisted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			day := func(offset int) time.Time {
				return time.Date(2026, time.August, 10+offset, 0, 0, 0, 0, time.UTC)
			}

			trades := []models.Trade{
				{Date: day(0), Action: models.ActionBuy, Price: 20.00, Shares: 500, Commission: 5},
				{Date: day(1), Action: models.ActionSell, Price: 19.88, Shares: 500, Commission: 5},
				{Date: day(2), Action: models.ActionBuy, Price: 20.14, Shares: 500, Commission: 5},
			}

			l := ledger.New("DEMO")
			output.Bold("Cost-basis walkthrough")
			output.Println()

			for _, t := range trades {
				if err := l.Append(t); err != nil {
					return err
				}
				p := l.Position()
				output.Printf("%s %s %s @ %s\n",
					t.Date.Format("2006-01-02"),
					string(t.Action),
					utils.FormatShares(t.Shares),
					utils.FormatCurrency(t.Price))
				output.Printf("   shares %s, cost %s, avg cost %s\n",
					utils.FormatShares(p.Shares),
					utils.FormatCurrency(p.Cost),
					utils.FormatCurrency(p.AverageCost()))
				output.Println()
			}

			currentPrice := 20.50
			pl := l.ProfitLoss(currentPrice)

			output.Bold("Position at %s", utils.FormatCurrency(currentPrice))
			renderPosition(output, l.Summary())
			renderProfitLoss(output, pl)
			output.Println()
			output.Dim("Selling the full position resets the cost basis; the rebuy sets it fresh.")
			return nil
		},
	}
}
