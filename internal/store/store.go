// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"stock-advisor/internal/models"
)

// LedgerStore defines the persistence boundary of the core: whole ledgers
// go in and out, and the caller re-derives positions after a load. Storage
// order is never trusted; loads return trades sorted by date.
type LedgerStore interface {
	// Trades
	SaveTrade(ctx context.Context, code string, trade models.Trade) error
	ReplaceLedger(ctx context.Context, code string, trades []models.Trade) error
	LoadLedger(ctx context.Context, code string) ([]models.Trade, error)
	LoadPortfolio(ctx context.Context) (map[string][]models.Trade, error)
	ListInstruments(ctx context.Context) ([]string, error)

	// Price history cache
	SavePrices(ctx context.Context, code string, points []models.PricePoint) error
	GetPrices(ctx context.Context, code string, from, to time.Time) ([]models.PricePoint, error)

	// Lifecycle
	Close() error
}
