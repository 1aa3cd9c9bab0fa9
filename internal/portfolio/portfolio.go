// Package portfolio aggregates per-instrument ledgers and rolls up
// profit/loss across them.
package portfolio

import (
	"sort"
	"sync"

	"stock-advisor/internal/errors"
	"stock-advisor/internal/ledger"
	"stock-advisor/internal/models"
)

// Portfolio owns one ledger per instrument code. It is created explicitly
// at process start and passed to whatever needs it; there is no ambient
// global instance.
//
// The instrument map is guarded so the HTTP layer can share one portfolio
// across requests. Mutations of a single ledger go through the lock too,
// serializing concurrent appends per instrument.
type Portfolio struct {
	mu          sync.RWMutex
	instruments map[string]*ledger.Ledger
}

// New creates an empty portfolio.
func New() *Portfolio {
	return &Portfolio{instruments: make(map[string]*ledger.Ledger)}
}

// GetOrCreate returns the instrument's ledger, creating an empty one if
// the code is new.
func (p *Portfolio) GetOrCreate(code string) *ledger.Ledger {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.instruments[code]
	if !ok {
		l = ledger.New(code)
		p.instruments[code] = l
	}
	return l
}

// Get returns the instrument's ledger or ErrInstrumentNotFound. Lookups
// never fabricate a position for an unknown code.
func (p *Portfolio) Get(code string) (*ledger.Ledger, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	l, ok := p.instruments[code]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInstrumentNotFound, "instrument %q", code)
	}
	return l, nil
}

// Append records a trade on the instrument's ledger, creating the ledger
// if needed. The whole mutation runs under the portfolio lock.
func (p *Portfolio) Append(code string, t models.Trade) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.instruments[code]
	if !ok {
		l = ledger.New(code)
		p.instruments[code] = l
	}
	return l.Append(t)
}

// Codes lists the held instrument codes in lexical order.
func (p *Portfolio) Codes() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	codes := make([]string, 0, len(p.instruments))
	for code := range p.instruments {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of held instruments.
func (p *Portfolio) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.instruments)
}

// Summary computes profit/loss for every instrument at the supplied
// current prices and rolls up the totals. An instrument whose price is
// missing from the map is valued at 0, showing up as a full loss; callers
// must supply prices for every code they care about.
func (p *Portfolio) Summary(currentPrices map[string]float64) models.PortfolioSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	summary := models.PortfolioSummary{
		Instruments: make(map[string]models.InstrumentSummary, len(p.instruments)),
	}

	for code, l := range p.instruments {
		pl := l.ProfitLoss(currentPrices[code])
		summary.Instruments[code] = models.InstrumentSummary{
			Position:   l.Summary(),
			ProfitLoss: pl,
		}
		summary.TotalInvestment += pl.TotalInvestment
		summary.TotalMarketValue += pl.MarketValue
		summary.TotalProfitLoss += pl.ProfitLoss
	}

	if summary.TotalInvestment > 0 {
		summary.TotalProfitLossRate = summary.TotalProfitLoss / summary.TotalInvestment * 100
	}
	return summary
}
