package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// analyze classifies why the budget filter emptied the candidate set by
// re-scanning the unfiltered catalog. The causes are independent axes, so
// a report can carry several reasons; their order is fixed: budget, data,
// calls.
func analyze(plans []models.Plan, req models.Requirement) *models.FailureReport {
	report := &models.FailureReport{}

	if reason, ok := budgetReason(plans, req); ok {
		report.Reasons = append(report.Reasons, reason)
	}
	if reason, ok := capacityReason(plans, req.Data, models.FailureDataInsufficient, dataQuota, gb, "data"); ok {
		report.Reasons = append(report.Reasons, reason)
	}
	if reason, ok := capacityReason(plans, req.Calls, models.FailureCallsInsufficient, callsQuota, minutes, "calls"); ok {
		report.Reasons = append(report.Reasons, reason)
	}

	return report
}

// budgetReason fires when no plan at all is priced within budget. The
// suggestion cites the cheapest plan covering both capacity needs; if no
// plan covers them at any price, it says so instead.
func budgetReason(plans []models.Plan, req models.Requirement) (models.FailureReason, bool) {
	for i := range plans {
		if !plans[i].Price.GreaterThan(req.Budget) {
			return models.FailureReason{}, false
		}
	}

	var min *decimal.Decimal
	for i := range plans {
		if !plans[i].Data.Satisfies(req.Data) || !plans[i].Calls.Satisfies(req.Calls) {
			continue
		}
		if min == nil || plans[i].Price.LessThan(*min) {
			price := plans[i].Price
			min = &price
		}
	}

	reason := models.FailureReason{Code: models.FailureBudgetTooLow}
	if min != nil {
		reason.MinBudget = min
		reason.Suggestion = fmt.Sprintf("raise the budget to at least %s to cover the requested data and calls", min)
	} else {
		reason.Suggestion = "no catalog plan satisfies the requested data and call capacity at any price"
	}
	return reason, true
}

// capacityReason fires when no plan, at any price, covers the required
// amount in one dimension. The suggestion names the best the catalog has.
func capacityReason(plans []models.Plan, required float64, code models.FailureCode, quotaOf func(*models.Plan) models.Quota, unit func(float64) string, noun string) (models.FailureReason, bool) {
	if required <= 0 {
		return models.FailureReason{}, false
	}

	max := 0.0
	for i := range plans {
		q := quotaOf(&plans[i])
		if q.Satisfies(required) {
			return models.FailureReason{}, false
		}
		if q.Amount > max {
			max = q.Amount
		}
	}

	avail := max
	return models.FailureReason{
		Code:         code,
		Suggestion:   fmt.Sprintf("no plan offers %s of %s; the largest available is %s", unit(required), noun, unit(avail)),
		MaxAvailable: &avail,
	}, true
}

func dataQuota(p *models.Plan) models.Quota  { return p.Data }
func callsQuota(p *models.Plan) models.Quota { return p.Calls }
