package indicators

import "fmt"

// DefaultOscillatorPeriod is the conventional lookback for the momentum
// oscillator.
const DefaultOscillatorPeriod = 14

// Oscillator calculates a bounded [0,100] momentum oscillator from the
// ratio of recent gains to losses (relative-strength style).
//
// Unlike the textbook RSI recursion, each window takes the simple
// arithmetic mean of the trailing gains and losses; there is no Wilder or
// exponential smoothing. A window with zero mean loss saturates at 100.
type Oscillator struct {
	period int
}

// NewOscillator creates a new momentum oscillator.
func NewOscillator(period int) *Oscillator {
	return &Oscillator{period: period}
}

func (o *Oscillator) Name() string {
	return fmt.Sprintf("OSC_%d", o.period)
}

func (o *Oscillator) Period() int {
	return o.period
}

// Calculate returns len(prices)-period oscillator values. It needs at least
// period+1 prices (period changes); fewer yields ErrInsufficientData.
func (o *Oscillator) Calculate(prices []float64) ([]float64, error) {
	if o.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(prices) < o.period+1 {
		return nil, ErrInsufficientData
	}

	gains := make([]float64, len(prices)-1)
	losses := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	result := make([]float64, 0, len(prices)-o.period)
	for i := o.period; i < len(prices); i++ {
		avgGain := mean(gains[i-o.period : i])
		avgLoss := mean(losses[i-o.period : i])

		if avgLoss == 0 {
			result = append(result, 100)
		} else {
			rs := avgGain / avgLoss
			result = append(result, 100-100/(1+rs))
		}
	}
	return result, nil
}
