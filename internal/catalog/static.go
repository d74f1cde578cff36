package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// Compile-time interface guard.
var _ Provider = (*StaticProvider)(nil)

// StaticProvider serves a fixed, in-memory plan list.
type StaticProvider struct {
	name  string
	plans []models.Plan
}

// NewStaticProvider wraps a fixed plan list as a Provider.
func NewStaticProvider(name string, plans []models.Plan) *StaticProvider {
	return &StaticProvider{name: name, plans: plans}
}

// Name implements Provider.
func (s *StaticProvider) Name() string {
	return s.name
}

// Plans implements Provider, returning a fresh copy so callers can never
// mutate the provider's backing data.
func (s *StaticProvider) Plans(_ context.Context) ([]models.Plan, error) {
	out := make([]models.Plan, len(s.plans))
	copy(out, s.plans)
	return out, nil
}

// BuiltinProviders returns the bundled carrier catalogs in their canonical
// order: China Mobile, China Unicom, China Telecom.
func BuiltinProviders() []Provider {
	return []Provider{ChinaMobile(), ChinaUnicom(), ChinaTelecom()}
}

// ChinaMobile returns the bundled China Mobile catalog: internet cards,
// 4G lines, 5G lines, and GoTone broadband bundles.
func ChinaMobile() *StaticProvider {
	const carrier = "China Mobile"
	return NewStaticProvider("china-mobile", []models.Plan{
		// Internet cards
		sp("cm-blossom-19", carrier, "Blossom Card 19", models.PlanTypeInternetCard, 19, 30, 0,
			"30 GB zero-rated app data", "free family calls"),
		sp("cm-blossom-20", carrier, "Blossom Card 20", models.PlanTypeInternetCard, 20, 10, 0,
			"10 GB general data", "free family calls"),
		sp("cm-blossom-29", carrier, "Blossom Card 29", models.PlanTypeInternetCard, 29, 35, 0,
			"5 GB general plus 30 GB app data"),
		sp("cm-blossom-39", carrier, "Blossom Card 39", models.PlanTypeInternetCard, 39, 40, 0,
			"10 GB general plus 30 GB app data", "free family calls"),
		// 4G plans
		sp("cm-flex-8", carrier, "4G Flex 8", models.PlanType4G, 8, 0.1, 0,
			"100 MB bundled data", "voice billed per minute"),
		sp("cm-flex-18", carrier, "4G Flex 18", models.PlanType4G, 18, 0.3, 0,
			"300 MB bundled data", "voice billed per minute"),
		sp("cm-flex-28", carrier, "4G Flex 28", models.PlanType4G, 28, 0.9, 0,
			"900 MB bundled data", "voice billed per minute"),
		sp("cm-flex-38", carrier, "4G Flex 38", models.PlanType4G, 38, 2.7, 0,
			"2700 MB bundled data", "voice billed per minute"),
		sp("cm-flight-18", carrier, "4G Flight 18", models.PlanType4G, 18, 1, 30,
			"1 GB bundled data", "30 bundled minutes"),
		sp("cm-flight-38", carrier, "4G Flight 38", models.PlanType4G, 38, 3, 100,
			"3 GB bundled data", "100 bundled minutes"),
		sp("cm-flight-58", carrier, "4G Flight 58", models.PlanType4G, 58, 5, 200,
			"5 GB bundled data", "200 bundled minutes"),
		sp("cm-stepup-19", carrier, "4G Step Up 19", models.PlanType4G, 19, 6.6, 50,
			"starts at 1 GB and grows monthly", "50 bundled minutes"),
		sp("cm-stepup-39", carrier, "4G Step Up 39", models.PlanType4G, 39, 13, 100,
			"starts at 4 GB and grows monthly", "100 bundled minutes"),
		// 5G plans
		sp("cm-prime-128", carrier, "5G Prime 128", models.PlanType5G, 128, 30, 500,
			"5G network", "30 GB bundled data", "500 bundled minutes"),
		sp("cm-prime-158", carrier, "5G Prime 158", models.PlanType5G, 158, 40, 700,
			"5G network", "40 GB bundled data", "700 bundled minutes"),
		sp("cm-prime-198", carrier, "5G Prime 198", models.PlanType5G, 198, 60, 1000,
			"5G network", "60 GB bundled data", "1000 bundled minutes"),
		sp("cm-prime-238", carrier, "5G Prime 238", models.PlanType5G, 238, 80, 1000,
			"5G network", "80 GB bundled data", "1000 bundled minutes"),
		sp("cm-prime-298", carrier, "5G Prime 298", models.PlanType5G, 298, 100, 1500,
			"5G network", "100 GB bundled data", "1500 bundled minutes"),
		sp("cm-family-99", carrier, "5G Family 99", models.PlanType5G, 99, 15, 300,
			"5G network", "15 GB bundled data", "300 bundled minutes"),
		sp("cm-family-139", carrier, "5G Family 139", models.PlanType5G, 139, 30, 1000,
			"5G network", "30 GB bundled data", "1000 bundled minutes"),
		sp("cm-family-169", carrier, "5G Family 169", models.PlanType5G, 169, 40, 1600,
			"5G network", "40 GB bundled data", "1600 bundled minutes"),
		sp("cm-family-219", carrier, "5G Family 219", models.PlanType5G, 219, 60, 2000,
			"5G network", "60 GB bundled data", "2000 bundled minutes"),
		sp("cm-family-319", carrier, "5G Family 319", models.PlanType5G, 319, 100, 2500,
			"5G network", "100 GB bundled data", "2500 bundled minutes"),
		// GoTone broadband bundles
		sp("cm-gotone-128", carrier, "GoTone Plus 128", models.PlanTypeBundle, 128, 20, 300,
			"worry-free 20 GB", "300 domestic minutes", "50M broadband bundle"),
		sp("cm-gotone-188", carrier, "GoTone Plus 188", models.PlanTypeBundle, 188, 30, 500,
			"worry-free 30 GB", "500 domestic minutes", "100M broadband bundle"),
		sp("cm-gotone-238", carrier, "GoTone Plus 238", models.PlanTypeBundle, 238, 40, 700,
			"worry-free 40 GB", "700 domestic minutes", "200M broadband bundle"),
	})
}

// ChinaUnicom returns the bundled China Unicom catalog.
func ChinaUnicom() *StaticProvider {
	return NewStaticProvider("china-unicom", []models.Plan{
		sp("cu-icecream-199", "China Unicom", "Ice Cream 199", models.PlanType5G, 199, 40, 1000,
			"5G network", "video streaming membership"),
	})
}

// ChinaTelecom returns the bundled China Telecom catalog.
func ChinaTelecom() *StaticProvider {
	return NewStaticProvider("china-telecom", []models.Plan{
		sp("ct-easyshare-129", "China Telecom", "5G Easy Share 129", models.PlanType5G, 129, 30, 500,
			"5G network", "cloud drive storage"),
	})
}

// sp builds one static plan entry.
func sp(id, carrier, name string, typ models.PlanType, price int64, data, calls float64, features ...string) models.Plan {
	return models.Plan{
		ID:       id,
		Carrier:  carrier,
		Name:     name,
		Type:     typ,
		Price:    decimal.NewFromInt(price),
		Data:     models.QuotaOf(data),
		Calls:    models.QuotaOf(calls),
		Features: features,
	}
}
