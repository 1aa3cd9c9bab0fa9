// Package cli provides the command-line interface for the advisory application.
package cli

import (
	"sort"
	"strings"

	"github.com/fatih/color"

	"stock-advisor/internal/models"
	"stock-advisor/pkg/utils"
)

func renderPosition(output *Output, p models.PositionSummary) {
	output.Println()
	output.Printf("  Shares:        %s\n", utils.FormatShares(p.CurrentShares))
	output.Printf("  Average Cost:  %s\n", utils.FormatCurrency(p.AverageCost))
	output.Printf("  Total Cost:    %s\n", utils.FormatCurrency(p.TotalCost))
	output.Printf("  Commission:    %s\n", utils.FormatCurrency(p.TotalCommission))
	output.Printf("  Investment:    %s\n", utils.FormatCurrency(p.TotalInvestment))
}

func renderProfitLoss(output *Output, pl models.ProfitLoss) {
	output.Println()
	output.Printf("  Market Value:  %s\n", utils.FormatCurrency(pl.MarketValue))
	output.Printf("  Investment:    %s\n", utils.FormatCurrency(pl.TotalInvestment))
	output.Printf("  P/L:           %s (%s)\n", output.FormatPnL(pl.ProfitLoss), output.FormatPercent(pl.ProfitLossRate))
}

// renderAdvice prints the full advisory report for one instrument.
func renderAdvice(output *Output, code string, adv models.Advice) {
	color.Cyan("📊 Advisory Report - %s", code)
	renderPosition(output, adv.Position)
	renderProfitLoss(output, adv.ProfitLoss)
	output.Println()

	output.Bold("Technical Signals")
	output.Printf("  Trend:         %s\n", colorSignal(output, adv.Trend))
	output.Printf("  Oscillator:    %s\n", colorSignal(output, adv.Oscillator))
	output.Printf("  Volatility:    %.4f\n", adv.Volatility)
	output.Printf("  Max Drawdown:  %.2f%%\n", adv.MaxDrawdown*100)
	output.Println()

	output.Printf("  Risk Level:    %s\n", colorRisk(output, adv.RiskLevel))
	output.Println()

	if len(adv.Items) == 0 {
		output.Dim("  No advice generated.")
		return
	}
	color.Yellow("💡 Advice")
	for _, item := range adv.Items {
		output.Printf("  • %s\n", item)
	}
}

// renderPortfolioSummary prints the rolled-up portfolio view.
func renderPortfolioSummary(output *Output, s models.PortfolioSummary) {
	color.Cyan("💰 Portfolio Summary")
	output.Println()
	output.Printf("  Investment:    %s\n", utils.FormatCurrency(s.TotalInvestment))
	output.Printf("  Market Value:  %s\n", utils.FormatCurrency(s.TotalMarketValue))
	output.Printf("  P/L:           %s (%s)\n", output.FormatPnL(s.TotalProfitLoss), output.FormatPercent(s.TotalProfitLossRate))
	output.Println()

	if len(s.Instruments) == 0 {
		return
	}

	codes := make([]string, 0, len(s.Instruments))
	for code := range s.Instruments {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	table := NewTable(output, "CODE", "SHARES", "AVG COST", "VALUE", "P/L", "P/L %")
	for _, code := range codes {
		inst := s.Instruments[code]
		table.AddRow(
			code,
			utils.FormatShares(inst.Position.CurrentShares),
			utils.FormatCurrency(inst.Position.AverageCost),
			utils.FormatCurrency(inst.ProfitLoss.MarketValue),
			output.FormatPnL(inst.ProfitLoss.ProfitLoss),
			output.FormatPercent(inst.ProfitLoss.ProfitLossRate),
		)
	}
	table.Render()
}

func colorSignal(output *Output, signal string) string {
	switch {
	case strings.Contains(signal, "buy") || strings.Contains(signal, "bullish") || strings.Contains(signal, "strong zone"):
		return output.Green(signal)
	case strings.Contains(signal, "sell") || strings.Contains(signal, "bearish") || strings.Contains(signal, "overbought"):
		return output.Red(signal)
	default:
		return output.Yellow(signal)
	}
}

func colorRisk(output *Output, level models.RiskLevel) string {
	text := strings.ToUpper(string(level))
	switch level {
	case models.RiskLow:
		return output.Green(text)
	case models.RiskMedium:
		return output.Yellow(text)
	case models.RiskHigh:
		return output.Red(text)
	default:
		return text
	}
}
