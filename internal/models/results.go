package models

import "time"

// PositionSummary describes the derived holding state of one instrument.
type PositionSummary struct {
	Code            string  `json:"code"`
	CurrentShares   int     `json:"current_shares"`
	AverageCost     float64 `json:"average_cost"`
	TotalCost       float64 `json:"total_cost"`
	TotalCommission float64 `json:"total_commission"`
	TotalInvestment float64 `json:"total_investment"`
}

// ProfitLoss describes the profit/loss of a position at a given price.
// All fields are zero when the position holds no shares.
type ProfitLoss struct {
	ProfitLoss      float64 `json:"profit_loss"`
	ProfitLossRate  float64 `json:"profit_loss_rate"`
	MarketValue     float64 `json:"market_value"`
	TotalInvestment float64 `json:"total_investment"`
}

// HistoryEntry is one trade projected for reporting, with the gross
// amount precomputed.
type HistoryEntry struct {
	Date        time.Time `json:"date"`
	Action      Action    `json:"action"`
	Price       float64   `json:"price"`
	Shares      int       `json:"shares"`
	Amount      float64   `json:"amount"`
	Commission  float64   `json:"commission"`
	Description string    `json:"description,omitempty"`
}

// InstrumentSummary pairs a position with its profit/loss for portfolio
// reporting.
type InstrumentSummary struct {
	Position   PositionSummary `json:"position"`
	ProfitLoss ProfitLoss      `json:"profit_loss"`
}

// PortfolioSummary rolls up positions across all instruments.
type PortfolioSummary struct {
	TotalInvestment     float64                      `json:"total_investment"`
	TotalMarketValue    float64                      `json:"total_market_value"`
	TotalProfitLoss     float64                      `json:"total_profit_loss"`
	TotalProfitLossRate float64                      `json:"total_profit_loss_rate"`
	Instruments         map[string]InstrumentSummary `json:"instruments"`
}

// RiskLevel qualifies the overall risk of holding a position.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Advice is the structured output of the advisory engine. Items holds the
// advice strings in the order they were derived; rendering preserves it.
type Advice struct {
	Position    PositionSummary `json:"position_summary"`
	ProfitLoss  ProfitLoss      `json:"profit_loss"`
	Trend       string          `json:"trend"`
	Oscillator  string          `json:"oscillator_signal"`
	Volatility  float64         `json:"volatility"`
	MaxDrawdown float64         `json:"max_drawdown"`
	RiskLevel   RiskLevel       `json:"risk_level"`
	Items       []string        `json:"advice"`
}
