package scoring

import "testing"

func TestGrahamNumber(t *testing.T) {
	tests := []struct {
		name      string
		eps       float64
		bvps      float64
		want      float64
		wantKnown bool
	}{
		{"typical", 3, 20, 36.74, true},
		{"exact root", 5, 8, 30, true},
		{"small", 1, 1, 4.74, true},
		{"negative eps", -1, 5, 0, false},
		{"zero eps", 0, 5, 0, false},
		{"negative book value", 2, -3, 0, false},
		{"zero book value", 2, 0, 0, false},
	}

	for _, tt := range tests {
		got := GrahamNumber(tt.eps, tt.bvps)
		if got.Known != tt.wantKnown {
			t.Errorf("%s: expected known=%v, got %v", tt.name, tt.wantKnown, got.Known)
			continue
		}
		if got.Known && got.Value != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got.Value)
		}
	}
}

func TestValuationScoreBands(t *testing.T) {
	graham := GrahamResult{Value: 100, Known: true}

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"significantly undervalued", 74, 90},
		{"undervalued boundary", 75, 75},
		{"undervalued", 80, 75},
		{"fair boundary", 100, 50},
		{"fairly valued", 110, 50},
		{"overvalued boundary", 125, 30},
		{"overvalued", 140, 30},
		{"significantly overvalued boundary", 150, 10},
		{"significantly overvalued", 300, 10},
	}

	for _, tt := range tests {
		got := ValuationScore(tt.price, graham)
		if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestValuationScoreUnknownGraham(t *testing.T) {
	// Absent fair value must stay neutral regardless of price.
	for _, price := range []float64{1, 50, 1000} {
		if got := ValuationScore(price, GrahamResult{}); got != NeutralScore {
			t.Errorf("price %v: expected neutral %v, got %v", price, NeutralScore, got)
		}
	}
}

func TestValuationScoreBadPrice(t *testing.T) {
	graham := GrahamResult{Value: 100, Known: true}

	if got := ValuationScore(0, graham); got != NeutralScore {
		t.Errorf("zero price: expected %v, got %v", NeutralScore, got)
	}
	if got := ValuationScore(-10, graham); got != NeutralScore {
		t.Errorf("negative price: expected %v, got %v", NeutralScore, got)
	}
}

func TestValuationScoreNegativeEarningsFirm(t *testing.T) {
	// eps <= 0 means no fair value, so the score is neutral at any price.
	graham := GrahamNumber(-1, 5)
	if graham.Known {
		t.Fatal("Expected unknown graham number for negative eps")
	}
	if got := ValuationScore(87.5, graham); got != NeutralScore {
		t.Errorf("expected %v, got %v", NeutralScore, got)
	}
}

func TestValuationScoreMonotonic(t *testing.T) {
	graham := GrahamResult{Value: 100, Known: true}
	prev := 100.0
	for price := 10.0; price <= 300.0; price += 0.5 {
		score := ValuationScore(price, graham)
		if score > prev {
			t.Fatalf("score increased from %v to %v at price=%v", prev, score, price)
		}
		prev = score
	}
}
