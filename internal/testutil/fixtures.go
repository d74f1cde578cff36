package testutil

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// NewPlan returns a Plan with sensible defaults, suitable for test fixtures.
// Override individual fields through options as needed.
func NewPlan(opts ...func(*models.Plan)) models.Plan {
	p := models.Plan{
		ID:      uuid.New().String(),
		Carrier: "china_mobile",
		Name:    "test-plan",
		Type:    models.PlanType5G,
		Price:   decimal.NewFromInt(100),
		Data:    models.QuotaOf(30),
		Calls:   models.QuotaOf(500),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithID sets the plan ID.
func WithID(id string) func(*models.Plan) {
	return func(p *models.Plan) { p.ID = id }
}

// WithCarrier sets the plan's carrier.
func WithCarrier(c string) func(*models.Plan) {
	return func(p *models.Plan) { p.Carrier = c }
}

// WithName sets the plan name.
func WithName(name string) func(*models.Plan) {
	return func(p *models.Plan) { p.Name = name }
}

// WithPrice sets the monthly price.
func WithPrice(yuan int64) func(*models.Plan) {
	return func(p *models.Plan) { p.Price = decimal.NewFromInt(yuan) }
}

// WithData sets the data quota in GB.
func WithData(gb float64) func(*models.Plan) {
	return func(p *models.Plan) { p.Data = models.QuotaOf(gb) }
}

// WithCalls sets the call quota in minutes.
func WithCalls(minutes float64) func(*models.Plan) {
	return func(p *models.Plan) { p.Calls = models.QuotaOf(minutes) }
}

// WithUnlimitedData marks the data quota unlimited.
func WithUnlimitedData() func(*models.Plan) {
	return func(p *models.Plan) { p.Data = models.UnlimitedQuota() }
}

// WithFeatures sets the plan's feature list.
func WithFeatures(features ...string) func(*models.Plan) {
	return func(p *models.Plan) { p.Features = features }
}
