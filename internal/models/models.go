// Package models provides domain models for the advisory application.
package models

import "time"

// Action represents the side of a trade.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Valid reports whether the action is a known trade side.
func (a Action) Valid() bool {
	return a == ActionBuy || a == ActionSell
}

// Trade represents a single trade record in an instrument's ledger.
// Date carries day granularity; ordering among trades on the same day
// is unspecified.
type Trade struct {
	Date        time.Time `json:"date"`
	Action      Action    `json:"action"`
	Price       float64   `json:"price"`
	Shares      int       `json:"shares"`
	Commission  float64   `json:"commission"`
	Description string    `json:"description,omitempty"`
}

// Amount returns the gross trade amount (price * shares), excluding commission.
func (t Trade) Amount() float64 {
	return t.Price * float64(t.Shares)
}

// PricePoint represents one sample of an instrument's price history.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Volume int64     `json:"volume"`
}

// Prices extracts the price values from an ordered sample series.
func Prices(points []PricePoint) []float64 {
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	return prices
}
