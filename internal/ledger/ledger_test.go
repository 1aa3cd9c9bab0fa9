package ledger

import (
	"math"
	"testing"
	"time"

	"stock-advisor/internal/models"
)

func day(offset int) time.Time {
	return time.Date(2026, time.August, 10+offset, 0, 0, 0, 0, time.UTC)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLedgerSellRebuyCostBasis(t *testing.T) {
	l := New("AAPL")

	trades := []models.Trade{
		{Date: day(0), Action: models.ActionBuy, Price: 20.00, Shares: 500, Commission: 5},
		{Date: day(1), Action: models.ActionSell, Price: 19.88, Shares: 500, Commission: 5},
		{Date: day(2), Action: models.ActionBuy, Price: 20.14, Shares: 500, Commission: 5},
	}
	for _, tr := range trades {
		if err := l.Append(tr); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	p := l.Position()
	if p.Shares != 500 {
		t.Errorf("Shares = %d, want 500", p.Shares)
	}
	if !approxEqual(p.Cost, 10070.0) {
		t.Errorf("Cost = %v, want 10070.0", p.Cost)
	}
	if !approxEqual(p.Commission, 15.0) {
		t.Errorf("Commission = %v, want 15.0", p.Commission)
	}
	if !approxEqual(p.AverageCost(), 20.14) {
		t.Errorf("AverageCost = %v, want 20.14", p.AverageCost())
	}

	pl := l.ProfitLoss(20.50)
	if !approxEqual(pl.MarketValue, 10250.0) {
		t.Errorf("MarketValue = %v, want 10250.0", pl.MarketValue)
	}
	if !approxEqual(pl.TotalInvestment, 10085.0) {
		t.Errorf("TotalInvestment = %v, want 10085.0", pl.TotalInvestment)
	}
	if !approxEqual(pl.ProfitLoss, 165.0) {
		t.Errorf("ProfitLoss = %v, want 165.0", pl.ProfitLoss)
	}
	wantRate := 165.0 / 10085.0 * 100
	if !approxEqual(pl.ProfitLossRate, wantRate) {
		t.Errorf("ProfitLossRate = %v, want %v", pl.ProfitLossRate, wantRate)
	}
}

func TestLedgerPartialSellReducesCostProportionally(t *testing.T) {
	l := New("MSFT")

	if err := l.Append(models.Trade{Date: day(0), Action: models.ActionBuy, Price: 10.0, Shares: 100, Commission: 4}); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(models.Trade{Date: day(1), Action: models.ActionSell, Price: 12.0, Shares: 25, Commission: 2}); err != nil {
		t.Fatal(err)
	}

	p := l.Position()
	if p.Shares != 75 {
		t.Errorf("Shares = %d, want 75", p.Shares)
	}
	// Cost shrinks by the fraction of the position sold, at cost not
	// sale price.
	if !approxEqual(p.Cost, 750.0) {
		t.Errorf("Cost = %v, want 750.0", p.Cost)
	}
	if !approxEqual(p.AverageCost(), 10.0) {
		t.Errorf("AverageCost = %v, want 10.0", p.AverageCost())
	}
	if !approxEqual(p.Commission, 6.0) {
		t.Errorf("Commission = %v, want 6.0", p.Commission)
	}
}

func TestLedgerSellAgainstEmptyPositionIsInert(t *testing.T) {
	l := New("AAPL")

	if err := l.Append(models.Trade{Date: day(0), Action: models.ActionSell, Price: 10.0, Shares: 50, Commission: 5}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// The trade stays in the history but the derived position is
	// untouched, commission included.
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
	p := l.Position()
	if p.Shares != 0 || p.Cost != 0 || p.Commission != 0 {
		t.Errorf("Position = %+v, want zero", p)
	}
}

func TestLedgerOverSellGoesNegative(t *testing.T) {
	l := New("AAPL")

	if err := l.Append(models.Trade{Date: day(0), Action: models.ActionBuy, Price: 10.0, Shares: 100}); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(models.Trade{Date: day(1), Action: models.ActionSell, Price: 10.0, Shares: 150}); err != nil {
		t.Fatalf("over-sell should be accepted: %v", err)
	}

	p := l.Position()
	if p.Shares != -50 {
		t.Errorf("Shares = %d, want -50", p.Shares)
	}
	if p.AverageCost() != 0 {
		t.Errorf("AverageCost = %v, want 0 for non-positive shares", p.AverageCost())
	}
}

func TestLedgerReplaysInDateOrder(t *testing.T) {
	l := New("AAPL")

	// Out-of-order insert: the sell is dated before the buy, so replay
	// must process the buy first.
	if err := l.Append(models.Trade{Date: day(5), Action: models.ActionSell, Price: 11.0, Shares: 100}); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(models.Trade{Date: day(1), Action: models.ActionBuy, Price: 10.0, Shares: 100}); err != nil {
		t.Fatal(err)
	}

	p := l.Position()
	if p.Shares != 0 {
		t.Errorf("Shares = %d, want 0 after date-ordered replay", p.Shares)
	}
	if !approxEqual(p.Cost, 0.0) {
		t.Errorf("Cost = %v, want 0", p.Cost)
	}

	trades := l.Trades()
	if !trades[0].Date.Before(trades[1].Date) {
		t.Error("Trades() not sorted by date")
	}
}

func TestLedgerAppendValidation(t *testing.T) {
	l := New("AAPL")

	cases := []struct {
		name  string
		trade models.Trade
	}{
		{"zero shares", models.Trade{Date: day(0), Action: models.ActionBuy, Price: 10, Shares: 0}},
		{"negative shares", models.Trade{Date: day(0), Action: models.ActionBuy, Price: 10, Shares: -5}},
		{"zero price", models.Trade{Date: day(0), Action: models.ActionBuy, Price: 0, Shares: 10}},
		{"negative price", models.Trade{Date: day(0), Action: models.ActionBuy, Price: -1, Shares: 10}},
		{"negative commission", models.Trade{Date: day(0), Action: models.ActionBuy, Price: 10, Shares: 10, Commission: -1}},
		{"unknown action", models.Trade{Date: day(0), Action: "short", Price: 10, Shares: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := l.Append(tc.trade); err == nil {
				t.Errorf("Append accepted invalid trade %+v", tc.trade)
			}
		})
	}

	if l.Len() != 0 {
		t.Errorf("rejected trades must not be recorded, Len = %d", l.Len())
	}
}

func TestLedgerProfitLossEmptyPosition(t *testing.T) {
	l := New("AAPL")

	if err := l.Append(models.Trade{Date: day(0), Action: models.ActionBuy, Price: 10.0, Shares: 100, Commission: 5}); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(models.Trade{Date: day(1), Action: models.ActionSell, Price: 12.0, Shares: 100, Commission: 5}); err != nil {
		t.Fatal(err)
	}

	pl := l.ProfitLoss(15.0)
	if pl.ProfitLoss != 0 || pl.ProfitLossRate != 0 || pl.MarketValue != 0 || pl.TotalInvestment != 0 {
		t.Errorf("ProfitLoss for empty position = %+v, want all zero", pl)
	}
}

func TestLedgerHistoryAmounts(t *testing.T) {
	l := New("AAPL")

	if err := l.Append(models.Trade{Date: day(0), Action: models.ActionBuy, Price: 20.0, Shares: 500, Commission: 5, Description: "opening"}); err != nil {
		t.Fatal(err)
	}

	history := l.History()
	if len(history) != 1 {
		t.Fatalf("History len = %d, want 1", len(history))
	}
	h := history[0]
	if !approxEqual(h.Amount, 10000.0) {
		t.Errorf("Amount = %v, want 10000.0", h.Amount)
	}
	if h.Description != "opening" {
		t.Errorf("Description = %q, want %q", h.Description, "opening")
	}
}

func TestLedgerRepeatedQueriesIdempotent(t *testing.T) {
	l := New("AAPL")

	for _, tr := range []models.Trade{
		{Date: day(0), Action: models.ActionBuy, Price: 20.00, Shares: 500, Commission: 5},
		{Date: day(1), Action: models.ActionSell, Price: 19.88, Shares: 200, Commission: 5},
	} {
		if err := l.Append(tr); err != nil {
			t.Fatal(err)
		}
	}

	first := l.Summary()
	firstPL := l.ProfitLoss(20.50)
	for i := 0; i < 5; i++ {
		if got := l.Summary(); got != first {
			t.Fatalf("Summary changed without appends: %+v vs %+v", got, first)
		}
		if got := l.ProfitLoss(20.50); got != firstPL {
			t.Fatalf("ProfitLoss changed without appends: %+v vs %+v", got, firstPL)
		}
	}
}

func TestLedgerSummary(t *testing.T) {
	l := New("AAPL")

	if err := l.Append(models.Trade{Date: day(0), Action: models.ActionBuy, Price: 20.0, Shares: 500, Commission: 5}); err != nil {
		t.Fatal(err)
	}

	s := l.Summary()
	if s.Code != "AAPL" {
		t.Errorf("Code = %q, want AAPL", s.Code)
	}
	if s.CurrentShares != 500 {
		t.Errorf("CurrentShares = %d, want 500", s.CurrentShares)
	}
	if !approxEqual(s.TotalInvestment, 10005.0) {
		t.Errorf("TotalInvestment = %v, want 10005.0", s.TotalInvestment)
	}
}
