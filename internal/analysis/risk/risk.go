// Package risk provides stateless risk measures over an ordered price series.
package risk

import "math"

// TradingPeriodsPerYear is the fixed annualization constant for volatility.
const TradingPeriodsPerYear = 252

// Volatility returns the annualized volatility of a price series: the
// sample standard deviation of simple period-over-period returns scaled by
// sqrt(252). It returns 0 when fewer than 2 returns exist, since a sample
// standard deviation is undefined there; callers need no extra guard.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	if len(returns) < 2 {
		return 0
	}

	return sampleStdDev(returns) * math.Sqrt(TradingPeriodsPerYear)
}

// MaxDrawdown returns the maximum fractional decline from a running peak,
// in [0, 1). Fewer than 2 prices yields 0.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	peak := prices[0]
	var maxDD float64
	for _, price := range prices {
		if price > peak {
			peak = price
		} else if dd := (peak - price) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// sampleStdDev is the standard deviation with the n-1 divisor.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var m float64
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
