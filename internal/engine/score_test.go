package engine

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

func TestAdequacy(t *testing.T) {
	tests := []struct {
		name     string
		quota    models.Quota
		required float64
		want     float64
	}{
		{name: "exact fit", quota: models.QuotaOf(30), required: 30, want: 1.0},
		{name: "surplus capped at one", quota: models.QuotaOf(300), required: 30, want: 1.0},
		{name: "half", quota: models.QuotaOf(15), required: 30, want: 0.5},
		{name: "zero capacity", quota: models.QuotaOf(0), required: 30, want: 0.0},
		{name: "unlimited", quota: models.UnlimitedQuota(), required: 1e9, want: 1.0},
		{name: "no requirement stated", quota: models.QuotaOf(0), required: 0, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adequacy(tt.quota, tt.required)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("adequacy(%v, %v) = %v, want %v", tt.quota, tt.required, got, tt.want)
			}
		})
	}
}

func TestPriceScore(t *testing.T) {
	tests := []struct {
		name   string
		price  int64
		budget int64
		want   float64
	}{
		{name: "free plan", price: 0, budget: 150, want: 1.0},
		{name: "free plan with zero budget", price: 0, budget: 0, want: 1.0},
		{name: "exactly at budget", price: 150, budget: 150, want: 0.0},
		{name: "half the budget", price: 75, budget: 150, want: 0.5},
		{name: "well under budget", price: 19, budget: 190, want: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := priceScore(decimal.NewFromInt(tt.price), decimal.NewFromInt(tt.budget))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("priceScore(%d, %d) = %v, want %v", tt.price, tt.budget, got, tt.want)
			}
		})
	}
}

func TestScoreCombinesBothDimensions(t *testing.T) {
	p := plan("p", 128, 40, 250)
	functional, price := score(&p, req(30, 500, 150))

	// Data exceeds (capped at 1.0), calls at half: mean is 0.75.
	if math.Abs(functional-0.75) > 1e-9 {
		t.Errorf("functional = %v, want 0.75", functional)
	}
	wantPrice := 1.0 - 128.0/150.0
	if math.Abs(price-wantPrice) > 1e-9 {
		t.Errorf("price = %v, want %v", price, wantPrice)
	}
}

func TestClamp01(t *testing.T) {
	if got := clamp01(-0.2); got != 0 {
		t.Errorf("clamp01(-0.2) = %v, want 0", got)
	}
	if got := clamp01(1.7); got != 1 {
		t.Errorf("clamp01(1.7) = %v, want 1", got)
	}
	if got := clamp01(0.42); got != 0.42 {
		t.Errorf("clamp01(0.42) = %v, want 0.42", got)
	}
}
