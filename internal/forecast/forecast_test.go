package forecast

import (
	"context"
	"math"
	"testing"
	"time"

	"stock-advisor/internal/scoring"
	"stock-advisor/internal/types"
)

func candlesFromCloses(closes ...float64) []types.Candle {
	candles := make([]types.Candle, len(closes))
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candles[i] = types.Candle{Date: start.AddDate(0, 0, i), Close: c}
	}
	return candles
}

func TestPredictLinearSeries(t *testing.T) {
	// Closes rising exactly 1 per bar should project one more step up.
	f := NewLinearForecaster(60, 10)
	candles := candlesFromCloses(100, 101, 102, 103, 104)

	predicted, err := f.PredictNextClose(context.Background(), candles)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if math.Abs(predicted-105) > 1e-9 {
		t.Errorf("Expected predicted close 105, got %v", predicted)
	}
}

func TestPredictFlatSeries(t *testing.T) {
	f := NewLinearForecaster(60, 10)
	candles := candlesFromCloses(50, 50, 50, 50)

	predicted, err := f.PredictNextClose(context.Background(), candles)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if math.Abs(predicted-50) > 1e-9 {
		t.Errorf("Expected flat projection 50, got %v", predicted)
	}
}

func TestPredictDriftCap(t *testing.T) {
	// A violent jump in the window would extrapolate far beyond the last
	// close; the cap keeps the projection within 10 percent.
	f := NewLinearForecaster(60, 10)
	candles := candlesFromCloses(10, 30, 50, 70, 90)

	predicted, err := f.PredictNextClose(context.Background(), candles)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if predicted != 99 {
		t.Errorf("Expected projection capped at 99, got %v", predicted)
	}
}

func TestPredictUsesLookbackWindow(t *testing.T) {
	// Only the last three closes should drive the fit.
	f := NewLinearForecaster(3, 50)
	candles := candlesFromCloses(500, 400, 300, 100, 101, 102)

	predicted, err := f.PredictNextClose(context.Background(), candles)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if math.Abs(predicted-103) > 1e-9 {
		t.Errorf("Expected predicted close 103 from recent window, got %v", predicted)
	}
}

func TestPredictTooFewCandles(t *testing.T) {
	f := NewLinearForecaster(60, 10)

	_, err := f.PredictNextClose(context.Background(), candlesFromCloses(100))
	if err == nil {
		t.Fatal("Expected error for single candle")
	}
	if !scoring.IsInvalidInput(err) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
}

func TestPredictNonPositiveClose(t *testing.T) {
	f := NewLinearForecaster(60, 10)

	_, err := f.PredictNextClose(context.Background(), candlesFromCloses(10, 5, 0))
	if err == nil {
		t.Fatal("Expected error for non-positive last close")
	}
	if !scoring.IsInvalidInput(err) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
}
