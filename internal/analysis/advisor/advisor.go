// Package advisor combines position accounting with technical and risk
// analysis into a structured recommendation. All computations are pure
// functions of their inputs; the advisor itself only carries configuration.
package advisor

import (
	"strings"

	"stock-advisor/internal/analysis/indicators"
	"stock-advisor/internal/analysis/risk"
	"stock-advisor/internal/models"
)

// Signal strings emitted by the advisory engine. The comprehensive advice
// matches on the "buy"/"sell" substrings of the trend signal, so the trend
// constants must stay mutually exclusive in that respect.
const (
	SignalInsufficientData = "insufficient data"
	SignalGoldenCross      = "strong buy signal (golden cross)"
	SignalDeathCross       = "strong sell signal (death cross)"
	SignalBullish          = "bullish trend"
	SignalBearish          = "bearish trend"
	SignalOverbought       = "overbought, consider selling"
	SignalOversold         = "oversold, consider buying"
	SignalStrongZone       = "strong zone"
	SignalWeakZone         = "weak zone"
)

// Advice strings appended by Advise, in derivation order.
const (
	AdviceTakeProfit     = "profit is sizable, consider partial profit-taking"
	AdviceHold           = "currently profitable, holding is reasonable"
	AdviceRiskControl    = "loss is significant, tighten risk control"
	AdviceAverageDown    = "currently at a loss, consider averaging down or a stop-loss"
	AdviceTechnicalBuy   = "technical indicators show a buy signal"
	AdviceTechnicalSell  = "technical indicators show a sell signal"
	AdviceHighVolatility = "elevated volatility, manage risk"
)

// Config holds the tunable parameters of the advisory engine.
type Config struct {
	ShortPeriod       int     // short moving-average window
	LongPeriod        int     // long moving-average window
	OscillatorPeriod  int     // momentum oscillator lookback
	ProfitTakingRate  float64 // percent gain above which partial profit-taking is advised
	RiskControlRate   float64 // percent loss below which risk control is advised
	VolatilityCeiling float64 // annualized volatility above which risk is forced high
}

// DefaultConfig returns the conventional advisory parameters.
func DefaultConfig() Config {
	return Config{
		ShortPeriod:       5,
		LongPeriod:        20,
		OscillatorPeriod:  indicators.DefaultOscillatorPeriod,
		ProfitTakingRate:  20,
		RiskControlRate:   -20,
		VolatilityCeiling: 0.5,
	}
}

// Advisor derives qualitative signals and comprehensive advice from a
// price series and a position.
type Advisor struct {
	cfg Config
}

// New creates an advisor with the given configuration.
func New(cfg Config) *Advisor {
	return &Advisor{cfg: cfg}
}

// TrendSignal compares the short and long moving averages at their latest
// two points. A fresh cross of short above long is a golden cross, the
// reverse a death cross; otherwise the relative order names the trend.
// When an average series has a single point, its previous value is treated
// as equal to the current one, so no crossover can fire there.
func (a *Advisor) TrendSignal(prices []float64) string {
	if len(prices) < a.cfg.LongPeriod {
		return SignalInsufficientData
	}

	shortSMA, err := indicators.NewSMA(a.cfg.ShortPeriod).Calculate(prices)
	if err != nil {
		return SignalInsufficientData
	}
	longSMA, err := indicators.NewSMA(a.cfg.LongPeriod).Calculate(prices)
	if err != nil {
		return SignalInsufficientData
	}

	curShort, prevShort := lastTwo(shortSMA)
	curLong, prevLong := lastTwo(longSMA)

	switch {
	case curShort > curLong && prevShort <= prevLong:
		return SignalGoldenCross
	case curShort < curLong && prevShort >= prevLong:
		return SignalDeathCross
	case curShort > curLong:
		return SignalBullish
	default:
		return SignalBearish
	}
}

// OscillatorSignal buckets the latest momentum-oscillator value.
func (a *Advisor) OscillatorSignal(prices []float64) string {
	values, err := indicators.NewOscillator(a.cfg.OscillatorPeriod).Calculate(prices)
	if err != nil || len(values) == 0 {
		return SignalInsufficientData
	}

	current := values[len(values)-1]
	switch {
	case current > 70:
		return SignalOverbought
	case current < 30:
		return SignalOversold
	case current > 50:
		return SignalStrongZone
	default:
		return SignalWeakZone
	}
}

// Advise combines the position summary, its profit/loss at the current
// price and the historical price series into a structured recommendation.
// The advice list preserves derivation order: profit/loss advice first,
// then technical signals, then volatility.
func (a *Advisor) Advise(position models.PositionSummary, pl models.ProfitLoss, prices []float64) models.Advice {
	trend := a.TrendSignal(prices)
	oscillator := a.OscillatorSignal(prices)
	volatility := risk.Volatility(prices)
	maxDD := risk.MaxDrawdown(prices)

	var items []string
	riskLevel := models.RiskLow

	// Profit/loss advice applies only when money is actually invested;
	// a no-position instrument keeps the default risk level.
	if pl.TotalInvestment > 0 {
		if pl.ProfitLoss > 0 {
			if pl.ProfitLossRate > a.cfg.ProfitTakingRate {
				items = append(items, AdviceTakeProfit)
			} else {
				items = append(items, AdviceHold)
			}
		} else {
			if pl.ProfitLossRate < a.cfg.RiskControlRate {
				items = append(items, AdviceRiskControl)
				riskLevel = models.RiskHigh
			} else {
				items = append(items, AdviceAverageDown)
				if riskLevel != models.RiskHigh {
					riskLevel = models.RiskMedium
				}
			}
		}
	}

	if strings.Contains(trend, "buy") {
		items = append(items, AdviceTechnicalBuy)
	} else if strings.Contains(trend, "sell") {
		items = append(items, AdviceTechnicalSell)
	}

	if volatility > a.cfg.VolatilityCeiling {
		items = append(items, AdviceHighVolatility)
		riskLevel = models.RiskHigh
	}

	return models.Advice{
		Position:    position,
		ProfitLoss:  pl,
		Trend:       trend,
		Oscillator:  oscillator,
		Volatility:  volatility,
		MaxDrawdown: maxDD,
		RiskLevel:   riskLevel,
		Items:       items,
	}
}

// lastTwo returns the final value of a series and the one before it,
// falling back to the final value when the series has a single point.
func lastTwo(values []float64) (current, previous float64) {
	current = values[len(values)-1]
	previous = current
	if len(values) > 1 {
		previous = values[len(values)-2]
	}
	return current, previous
}
