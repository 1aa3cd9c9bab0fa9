// Package ledger implements the per-instrument trade ledger and the
// position derived from it.
//
// The position is a pure function of the ledger: every mutation re-sorts
// the trades by date and replays the full history from scratch, so it stays
// correct under any reordering of appends.
package ledger

import (
	"sort"

	"stock-advisor/internal/errors"
	"stock-advisor/internal/models"
)

// Ledger holds the ordered trade records of one instrument and a derived
// position snapshot, recomputed on every append.
//
// A Ledger is not safe for concurrent mutation; callers that share one
// across goroutines must serialize through the portfolio aggregator.
type Ledger struct {
	code     string
	trades   []models.Trade
	position Position
}

// New creates an empty ledger for the given instrument code.
func New(code string) *Ledger {
	return &Ledger{code: code}
}

// Code returns the instrument code this ledger belongs to.
func (l *Ledger) Code() string {
	return l.code
}

// Len returns the number of recorded trades.
func (l *Ledger) Len() int {
	return len(l.trades)
}

// Append records a trade, re-sorts the ledger by ascending date and replays
// the full history into a fresh position.
//
// Only the trade's own shape is validated (positive shares and price, known
// action, non-negative commission). Selling more shares than held is NOT
// rejected; the replay handles over-sells permissively, matching the
// accounting rules in Position.
func (l *Ledger) Append(t models.Trade) error {
	if err := validate(t); err != nil {
		return err
	}

	l.trades = append(l.trades, t)
	// Stable sort on date alone; relative order of same-day trades is
	// unspecified and nothing may depend on it.
	sort.SliceStable(l.trades, func(i, j int) bool {
		return l.trades[i].Date.Before(l.trades[j].Date)
	})
	l.position = Replay(l.trades)
	return nil
}

// Trades returns a copy of the trade records in ascending date order.
func (l *Ledger) Trades() []models.Trade {
	out := make([]models.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// History projects the trades for reporting, each with its gross amount
// precomputed. Read-only.
func (l *Ledger) History() []models.HistoryEntry {
	history := make([]models.HistoryEntry, 0, len(l.trades))
	for _, t := range l.trades {
		history = append(history, models.HistoryEntry{
			Date:        t.Date,
			Action:      t.Action,
			Price:       t.Price,
			Shares:      t.Shares,
			Amount:      t.Amount(),
			Commission:  t.Commission,
			Description: t.Description,
		})
	}
	return history
}

// Position returns the current derived position snapshot.
func (l *Ledger) Position() Position {
	return l.position
}

// Summary exposes the derived holding state for reporting.
func (l *Ledger) Summary() models.PositionSummary {
	return models.PositionSummary{
		Code:            l.code,
		CurrentShares:   l.position.Shares,
		AverageCost:     l.position.AverageCost(),
		TotalCost:       l.position.Cost,
		TotalCommission: l.position.Commission,
		TotalInvestment: l.position.TotalInvestment(),
	}
}

// ProfitLoss computes the profit/loss of the current position at the given
// price.
func (l *Ledger) ProfitLoss(currentPrice float64) models.ProfitLoss {
	return l.position.ProfitLoss(currentPrice)
}

func validate(t models.Trade) error {
	if !t.Action.Valid() {
		return errors.NewValidationError("action", string(t.Action), "must be buy or sell")
	}
	if t.Shares <= 0 {
		return errors.NewValidationError("shares", t.Shares, "must be positive")
	}
	if t.Price <= 0 {
		return errors.NewValidationError("price", t.Price, "must be positive")
	}
	if t.Commission < 0 {
		return errors.NewValidationError("commission", t.Commission, "must not be negative")
	}
	return nil
}
