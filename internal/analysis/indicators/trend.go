// Package indicators provides stateless windowed computations over an
// ordered price series, one value per period.
package indicators

import "fmt"

// SMA calculates the Simple Moving Average over trailing windows.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string {
	return fmt.Sprintf("SMA_%d", s.period)
}

func (s *SMA) Period() int {
	return s.period
}

// Calculate returns one average per complete trailing window, so the output
// has len(prices)-period+1 values. Fewer prices than the period yields
// ErrInsufficientData and an empty result.
func (s *SMA) Calculate(prices []float64) ([]float64, error) {
	if s.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(prices) < s.period {
		return nil, ErrInsufficientData
	}

	result := make([]float64, 0, len(prices)-s.period+1)
	for i := s.period - 1; i < len(prices); i++ {
		result = append(result, mean(prices[i-s.period+1:i+1]))
	}
	return result, nil
}
