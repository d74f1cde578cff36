package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// score computes the two sub-scores for a plan that already passed the
// budget filter. Both land in [0, 1].
func score(p *models.Plan, req models.Requirement) (functional, price float64) {
	functional = (adequacy(p.Data, req.Data) + adequacy(p.Calls, req.Calls)) / 2
	price = priceScore(p.Price, req.Budget)
	return functional, price
}

// adequacy is the per-dimension match ratio. Unlimited capacity and absent
// requirements are fully adequate. Credit caps at 1.0: surplus capacity
// never outranks a just-right plan.
func adequacy(q models.Quota, required float64) float64 {
	if q.Unlimited || required <= 0 {
		return 1.0
	}
	return math.Min(1.0, q.Amount/required)
}

// priceScore rewards cheaper plans: 1.0 for a free plan, 0.0 for one priced
// exactly at the ceiling. Callers guarantee price <= budget.
func priceScore(price, budget decimal.Decimal) float64 {
	if price.IsZero() {
		return 1.0
	}
	ratio, _ := price.Div(budget).Float64()
	return clamp01(1.0 - ratio)
}

// clamp01 clips v into [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
