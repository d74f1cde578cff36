package models

import "github.com/shopspring/decimal"

// ValueTier labels the cost-effectiveness of a recommended plan, derived
// from its price score.
type ValueTier string

const (
	TierHighValue     ValueTier = "high-value"
	TierGoodValue     ValueTier = "good-value"
	TierStandardPrice ValueTier = "standard-price"
)

// ScoredCandidate binds a plan to its evaluation for a single request.
// All scores are in [0, 1]. The candidate holds a read-only reference to
// the catalog's plan; it never owns or mutates it.
type ScoredCandidate struct {
	Plan            *Plan     `json:"plan"`
	FunctionalScore float64   `json:"functional_score"`
	PriceScore      float64   `json:"price_score"`
	CompositeScore  float64   `json:"composite_score"`
	Reasons         []string  `json:"reasons"`
	Tier            ValueTier `json:"tier,omitempty"`
	BestMatch       bool      `json:"best_match,omitempty"`
}

// FailureCode tags one independent cause for an empty recommendation set.
type FailureCode string

const (
	FailureBudgetTooLow      FailureCode = "budget-too-low"
	FailureDataInsufficient  FailureCode = "data-insufficient-catalog"
	FailureCallsInsufficient FailureCode = "calls-insufficient-catalog"
)

// FailureReason explains one cause with an actionable suggestion.
// MinBudget is set for budget-too-low when some plan covers both capacity
// needs; MaxAvailable carries the catalog's best capacity for the
// insufficient dimension.
type FailureReason struct {
	Code         FailureCode      `json:"code"`
	Suggestion   string           `json:"suggestion"`
	MinBudget    *decimal.Decimal `json:"min_budget,omitempty"`
	MaxAvailable *float64         `json:"max_available,omitempty"`
}

// FailureReport collects every independent reason no plan qualified.
// Causes are separate axes, so a report may carry several reasons at once.
type FailureReport struct {
	Reasons []FailureReason `json:"reasons"`
}

// Has reports whether the report carries the given failure code.
func (r *FailureReport) Has(code FailureCode) bool {
	for i := range r.Reasons {
		if r.Reasons[i].Code == code {
			return true
		}
	}
	return false
}

// RecommendationResult is the engine's output: a ranked candidate list
// (best first), or a failure report when nothing passed the budget filter.
// Exactly one of the two is populated.
type RecommendationResult struct {
	Recommendations []ScoredCandidate `json:"recommendations,omitempty"`
	Failure         *FailureReport    `json:"failure,omitempty"`
}

// Matched reports whether the result carries recommendations rather than
// a failure report.
func (r *RecommendationResult) Matched() bool {
	return r.Failure == nil
}
