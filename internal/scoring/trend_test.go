package scoring

import (
	"errors"
	"testing"
)

func TestTrendScoreBands(t *testing.T) {
	tests := []struct {
		name      string
		last      float64
		predicted float64
		want      float64
	}{
		{"strong up", 100, 103, 90},
		{"just above two percent", 100, 102.01, 90},
		{"exactly two percent", 100, 102, 70},
		{"mild up", 100, 101, 70},
		{"just above half percent", 100, 100.51, 70},
		{"exactly half percent", 100, 100.5, 50},
		{"flat", 100, 100, 50},
		{"exactly minus half percent", 100, 99.5, 30},
		{"mild down", 100, 99, 30},
		{"exactly minus two percent", 100, 98, 10},
		{"strong down", 100, 97, 10},
		{"deep drop", 250, 200, 10},
	}

	for _, tt := range tests {
		got, err := TrendScore(tt.last, tt.predicted)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected score %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestTrendScoreZeroLastClose(t *testing.T) {
	_, err := TrendScore(0, 100)
	if err == nil {
		t.Fatal("Expected error for zero last close")
	}

	var ie *InvalidInputError
	if !errors.As(err, &ie) {
		t.Fatalf("Expected InvalidInputError, got %T", err)
	}
	if ie.Field != "last_close" {
		t.Errorf("Expected field last_close, got %s", ie.Field)
	}
	if !IsInvalidInput(err) {
		t.Error("Expected IsInvalidInput to report true")
	}
}

func TestTrendScoreMonotonic(t *testing.T) {
	// Walk the predicted close upward and check the score never decreases.
	last := 100.0
	prev := 0.0
	for predicted := 90.0; predicted <= 110.0; predicted += 0.05 {
		score, err := TrendScore(last, predicted)
		if err != nil {
			t.Fatalf("unexpected error at predicted=%v: %v", predicted, err)
		}
		if score < prev {
			t.Fatalf("score decreased from %v to %v at predicted=%v", prev, score, predicted)
		}
		prev = score
	}
}

func TestTrendScoreValues(t *testing.T) {
	// Every output must be one of the five band scores.
	valid := map[float64]bool{10: true, 30: true, 50: true, 70: true, 90: true}
	for predicted := 50.0; predicted <= 150.0; predicted += 1.0 {
		score, err := TrendScore(100, predicted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !valid[score] {
			t.Fatalf("unexpected score %v at predicted=%v", score, predicted)
		}
	}
}
