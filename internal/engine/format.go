package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// Price-score thresholds for the value tiers. Tiering communicates
// cost-effectiveness, a separate axis from overall fit, so it reads the
// price score rather than the composite.
const (
	highValueThreshold = 0.7
	goodValueThreshold = 0.4
)

// format attaches reasons, value tiers, and the best-match marker in
// place. It never reorders candidates or touches scores.
func format(cands []models.ScoredCandidate, req models.Requirement) {
	for i := range cands {
		cands[i].Reasons = buildReasons(cands[i].Plan, req)
		cands[i].Tier = tierFor(cands[i].PriceScore)
	}
	if len(cands) > 0 {
		cands[0].BestMatch = true
	}
}

// tierFor maps a price score onto the qualitative value tier.
func tierFor(priceScore float64) models.ValueTier {
	switch {
	case priceScore >= highValueThreshold:
		return models.TierHighValue
	case priceScore >= goodValueThreshold:
		return models.TierGoodValue
	default:
		return models.TierStandardPrice
	}
}

// buildReasons composes the justification strings: data, then calls, then
// price. Same inputs, same strings. Dimensions the user did not ask for
// are skipped unless the plan is unlimited there.
func buildReasons(p *models.Plan, req models.Requirement) []string {
	reasons := make([]string, 0, 3)
	if r := quotaReason("data", p.Data, req.Data, gb); r != "" {
		reasons = append(reasons, r)
	}
	if r := quotaReason("calls", p.Calls, req.Calls, minutes); r != "" {
		reasons = append(reasons, r)
	}
	reasons = append(reasons, priceReason(p.Price, req.Budget))
	return reasons
}

// quotaReason compares one capacity dimension against the request.
func quotaReason(label string, q models.Quota, required float64, unit func(float64) string) string {
	if q.Unlimited {
		return label + ": unlimited"
	}
	if required <= 0 {
		return ""
	}
	switch {
	case q.Amount > required:
		return fmt.Sprintf("%s: %s, %s over your request", label, unit(q.Amount), unit(q.Amount-required))
	case q.Amount == required:
		return fmt.Sprintf("%s: %s, exactly as requested", label, unit(q.Amount))
	default:
		return fmt.Sprintf("%s: %s, %s short of your request", label, unit(q.Amount), unit(required-q.Amount))
	}
}

// priceReason notes the price relative to the budget ceiling.
func priceReason(price, budget decimal.Decimal) string {
	switch {
	case price.IsZero():
		return "price: free"
	case price.Equal(budget):
		return fmt.Sprintf("price: %s, exactly your budget", price)
	default:
		return fmt.Sprintf("price: %s, %s under your %s budget", price, budget.Sub(price), budget)
	}
}

func gb(v float64) string      { return fmtAmount(v) + " GB" }
func minutes(v float64) string { return fmtAmount(v) + " minutes" }

// fmtAmount renders a quota amount without trailing zeros, snapping the
// float noise that quota subtraction leaves behind (6.6-6 != 0.6).
func fmtAmount(v float64) string {
	if a := math.Abs(v); a < 1e15 {
		v = math.Round(v*1e9) / 1e9
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
