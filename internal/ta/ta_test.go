package ta

import (
	"math"
	"testing"
)

func TestReturns(t *testing.T) {
	closes := []float64{100, 110, 99}
	returns := Returns(closes)

	if len(returns) != 2 {
		t.Fatalf("Expected 2 returns, got %d", len(returns))
	}
	if math.Abs(returns[0]-0.10) > 1e-12 {
		t.Errorf("Expected first return 0.10, got %v", returns[0])
	}
	if math.Abs(returns[1]-(-0.10)) > 1e-12 {
		t.Errorf("Expected second return -0.10, got %v", returns[1])
	}

	if Returns([]float64{100}) != nil {
		t.Error("Expected nil returns for single close")
	}
}

func TestReturnsSkipsZeroClose(t *testing.T) {
	returns := Returns([]float64{100, 0, 50})
	if len(returns) != 1 {
		t.Fatalf("Expected 1 return, got %d", len(returns))
	}
}

func TestAnnualizedVolatilityFlatSeries(t *testing.T) {
	closes := []float64{100, 100, 100, 100}
	if got := AnnualizedVolatility(closes); got != 0 {
		t.Errorf("Expected zero volatility for flat series, got %v", got)
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	// Alternating +1%/-1% days have a known sample deviation.
	closes := []float64{100, 101, 99.99, 100.9899}
	got := AnnualizedVolatility(closes)

	if math.IsNaN(got) {
		t.Fatal("Expected a value, got NaN")
	}
	if got <= 0 {
		t.Errorf("Expected positive volatility, got %v", got)
	}
}

func TestAnnualizedVolatilityShortSeries(t *testing.T) {
	if got := AnnualizedVolatility([]float64{100, 101}); !math.IsNaN(got) {
		t.Errorf("Expected NaN for a single return, got %v", got)
	}
}
