package indicators

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMAInsufficientData(t *testing.T) {
	sma := NewSMA(5)

	for _, prices := range [][]float64{nil, {}, {1, 2, 3, 4}} {
		_, err := sma.Calculate(prices)
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Calculate(%v) err = %v, want ErrInsufficientData", prices, err)
		}
	}
}

func TestSMAInvalidPeriod(t *testing.T) {
	for _, period := range []int{0, -1} {
		_, err := NewSMA(period).Calculate([]float64{1, 2, 3})
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("period %d: err = %v, want ErrInvalidPeriod", period, err)
		}
	}
}

func TestSMAExactWindow(t *testing.T) {
	sma := NewSMA(3)

	result, err := sma.Calculate([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("len = %d, want 1", len(result))
	}
	if !approxEqual(result[0], 2.0) {
		t.Errorf("result[0] = %v, want 2.0", result[0])
	}
}

func TestSMASlidingWindows(t *testing.T) {
	sma := NewSMA(2)

	result, err := sma.Calculate([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	want := []float64{1.5, 2.5, 3.5, 4.5}
	if len(result) != len(want) {
		t.Fatalf("len = %d, want %d", len(result), len(want))
	}
	for i := range want {
		if !approxEqual(result[i], want[i]) {
			t.Errorf("result[%d] = %v, want %v", i, result[i], want[i])
		}
	}
}

func TestSMAName(t *testing.T) {
	if got := NewSMA(20).Name(); got != "SMA_20" {
		t.Errorf("Name = %q, want SMA_20", got)
	}
}

func TestOscillatorInsufficientData(t *testing.T) {
	osc := NewOscillator(14)

	// period+1 prices are needed, one more than the period itself.
	prices := make([]float64, 14)
	for i := range prices {
		prices[i] = float64(i)
	}
	_, err := osc.Calculate(prices)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}

func TestOscillatorAllGainsSaturates(t *testing.T) {
	osc := NewOscillator(3)

	result, err := osc.Calculate([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("len = %d, want 3", len(result))
	}
	for i, v := range result {
		if v != 100 {
			t.Errorf("result[%d] = %v, want 100 with zero mean loss", i, v)
		}
	}
}

func TestOscillatorAllLossesFloors(t *testing.T) {
	osc := NewOscillator(3)

	result, err := osc.Calculate([]float64{6, 5, 4, 3, 2, 1})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	for i, v := range result {
		if !approxEqual(v, 0) {
			t.Errorf("result[%d] = %v, want 0 with zero mean gain", i, v)
		}
	}
}

func TestOscillatorBalancedMoves(t *testing.T) {
	osc := NewOscillator(2)

	// Gains and losses of equal magnitude in each window give RS = 1,
	// hence 50.
	result, err := osc.Calculate([]float64{10, 11, 10, 11, 10})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	for i, v := range result {
		if !approxEqual(v, 50.0) {
			t.Errorf("result[%d] = %v, want 50.0", i, v)
		}
	}
}

func TestOscillatorOutputLength(t *testing.T) {
	osc := NewOscillator(14)

	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i%5)
	}
	result, err := osc.Calculate(prices)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(result) != len(prices)-14 {
		t.Errorf("len = %d, want %d", len(result), len(prices)-14)
	}
}
