// Package engine implements the plan recommendation engine: a pure,
// deterministic computation that filters a plan catalog by budget, scores
// and ranks the survivors, and explains empty results. The engine holds no
// state between calls and performs no I/O, so concurrent use needs no
// locking as long as each call gets an immutable catalog snapshot.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// ErrEmptyCatalog is returned when a recommendation is requested against a
// catalog with no plans. This is a precondition failure, not a no-match
// result: with nothing to analyze there is no FailureReport to give.
var ErrEmptyCatalog = errors.New("catalog contains no plans")

// weightSumTolerance bounds the floating-point drift allowed when checking
// that the two scoring weights sum to 1.0.
const weightSumTolerance = 1e-9

// Config holds the engine's tunable parameters. The weights blend the two
// sub-scores into the composite score and must sum to 1.0; MaxResults caps
// the returned list.
type Config struct {
	FunctionalWeight float64 `json:"functional_weight" mapstructure:"functional_weight"`
	PriceWeight      float64 `json:"price_weight" mapstructure:"price_weight"`
	MaxResults       int     `json:"max_results" mapstructure:"max_results"`
}

// DefaultConfig returns the stock configuration: capability fit weighted
// over marginal savings (70/30), ten results at most.
func DefaultConfig() Config {
	return Config{FunctionalWeight: 0.7, PriceWeight: 0.3, MaxResults: 10}
}

// Validate rejects weight combinations that would let composite scores
// leave [0, 1], and non-positive result caps.
func (c Config) Validate() error {
	if !(c.FunctionalWeight >= 0 && c.FunctionalWeight <= 1) {
		return &models.ValidationError{Field: "functional_weight", Constraint: "must be within [0, 1]"}
	}
	if !(c.PriceWeight >= 0 && c.PriceWeight <= 1) {
		return &models.ValidationError{Field: "price_weight", Constraint: "must be within [0, 1]"}
	}
	if math.Abs(c.FunctionalWeight+c.PriceWeight-1.0) > weightSumTolerance {
		return &models.ValidationError{Field: "functional_weight, price_weight", Constraint: "must sum to 1.0"}
	}
	if c.MaxResults < 1 {
		return &models.ValidationError{Field: "max_results", Constraint: "must be at least 1"}
	}
	return nil
}

// Engine scores and ranks catalog plans against a requirement.
type Engine struct {
	cfg Config
}

// New creates an engine. Invalid configuration is rejected here so that
// invariant violations never surface mid-computation.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Recommend ranks the catalog against the requirement. The budget is the
// sole hard constraint: plans priced over it are dropped, while data and
// call shortfalls only lower the score, so a cheaper-but-smaller plan is
// still surfaced rather than returning nothing. When no plan fits the
// budget the result carries a FailureReport. An empty catalog or malformed
// input is an error, reported before any scoring runs.
func (e *Engine) Recommend(plans []models.Plan, req models.Requirement) (*models.RecommendationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("requirement: %w", err)
	}
	if len(plans) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i := range plans {
		if err := plans[i].Validate(); err != nil {
			return nil, fmt.Errorf("plan %s: %w", planLabel(&plans[i], i), err)
		}
	}

	candidates := make([]models.ScoredCandidate, 0, len(plans))
	for i := range plans {
		if plans[i].Price.GreaterThan(req.Budget) {
			continue
		}
		functional, price := score(&plans[i], req)
		candidates = append(candidates, models.ScoredCandidate{
			Plan:            &plans[i],
			FunctionalScore: functional,
			PriceScore:      price,
			CompositeScore:  clamp01(e.cfg.FunctionalWeight*functional + e.cfg.PriceWeight*price),
		})
	}

	if len(candidates) == 0 {
		return &models.RecommendationResult{Failure: analyze(plans, req)}, nil
	}

	// Stable sort: full ties keep the catalog's input order.
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].CompositeScore != candidates[b].CompositeScore {
			return candidates[a].CompositeScore > candidates[b].CompositeScore
		}
		return candidates[a].Plan.Price.LessThan(candidates[b].Plan.Price)
	})

	if len(candidates) > e.cfg.MaxResults {
		candidates = candidates[:e.cfg.MaxResults]
	}

	format(candidates, req)

	return &models.RecommendationResult{Recommendations: candidates}, nil
}

// planLabel names a plan for error messages: ID, falling back to name,
// falling back to catalog position.
func planLabel(p *models.Plan, i int) string {
	if p.ID != "" {
		return p.ID
	}
	if p.Name != "" {
		return fmt.Sprintf("%q", p.Name)
	}
	return fmt.Sprintf("#%d", i)
}
