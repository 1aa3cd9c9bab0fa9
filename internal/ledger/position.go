package ledger

import "stock-advisor/internal/models"

// Position is the holding state derived from a date-ordered trade sequence
// under weighted-average cost accounting with proportional reduction on
// sells. It is a value; mutating the ledger produces a new one.
type Position struct {
	// Shares currently held. Can go negative after an over-sell; see Replay.
	Shares int
	// Cost is the aggregate cost basis attributed to the open shares.
	Cost float64
	// Commission accumulates across both buys and sells and is never reduced.
	Commission float64
}

// Replay derives a position from trades in ascending date order.
//
// Buys add shares and cost at the trade price. Sells scale the cost basis
// down by the fraction of the pre-sell holding that was sold. A sell that
// arrives while no shares are held is ignored entirely, commission included.
// Selling more shares than held is not rejected: the ratio is taken against
// the pre-sell share count, so an over-sell can drive shares negative and
// the cost below zero.
func Replay(trades []models.Trade) Position {
	var p Position
	for _, t := range trades {
		switch t.Action {
		case models.ActionBuy:
			p.Shares += t.Shares
			p.Cost += t.Price * float64(t.Shares)
			p.Commission += t.Commission
		case models.ActionSell:
			if p.Shares > 0 {
				ratio := float64(t.Shares) / float64(p.Shares)
				p.Cost *= 1 - ratio
				p.Shares -= t.Shares
				p.Commission += t.Commission
			}
		}
	}
	return p
}

// AverageCost returns the cost basis per held share, or 0 without a holding.
func (p Position) AverageCost() float64 {
	if p.Shares <= 0 {
		return 0
	}
	return p.Cost / float64(p.Shares)
}

// TotalInvestment returns the cost basis plus cumulative commission.
func (p Position) TotalInvestment() float64 {
	return p.Cost + p.Commission
}

// ProfitLoss computes profit/loss at the given price. Without a holding all
// fields are zero; a zero investment yields a zero rate. Purely numerical
// edge cases degrade to neutral values rather than failing.
func (p Position) ProfitLoss(currentPrice float64) models.ProfitLoss {
	if p.Shares <= 0 {
		return models.ProfitLoss{}
	}

	marketValue := currentPrice * float64(p.Shares)
	totalInvestment := p.TotalInvestment()
	profitLoss := marketValue - totalInvestment

	var rate float64
	if totalInvestment > 0 {
		rate = profitLoss / totalInvestment * 100
	}

	return models.ProfitLoss{
		ProfitLoss:      profitLoss,
		ProfitLossRate:  rate,
		MarketValue:     marketValue,
		TotalInvestment: totalInvestment,
	}
}
