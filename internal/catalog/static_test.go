package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

func TestBuiltinProviders(t *testing.T) {
	providers := BuiltinProviders()
	if len(providers) != 3 {
		t.Fatalf("got %d providers, want 3", len(providers))
	}

	wantNames := []string{"china-mobile", "china-unicom", "china-telecom"}
	total := 0
	for i, p := range providers {
		if p.Name() != wantNames[i] {
			t.Errorf("provider[%d].Name() = %q, want %q", i, p.Name(), wantNames[i])
		}
		plans, err := p.Plans(context.Background())
		if err != nil {
			t.Fatalf("%s.Plans: %v", p.Name(), err)
		}
		total += len(plans)
	}
	if total != 28 {
		t.Errorf("builtin catalog has %d plans, want 28", total)
	}
}

func TestChinaMobileCatalog(t *testing.T) {
	plans, err := ChinaMobile().Plans(context.Background())
	if err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if len(plans) != 26 {
		t.Fatalf("got %d plans, want 26", len(plans))
	}

	seen := make(map[string]bool, len(plans))
	byID := make(map[string]models.Plan, len(plans))
	for _, p := range plans {
		if seen[p.ID] {
			t.Errorf("duplicate plan ID %q", p.ID)
		}
		seen[p.ID] = true
		byID[p.ID] = p
		if p.Carrier != "China Mobile" {
			t.Errorf("plan %s carrier = %q, want China Mobile", p.ID, p.Carrier)
		}
		if violations := p.Violations(); len(violations) != 0 {
			t.Errorf("plan %s invalid: %v", p.ID, violations)
		}
	}

	// Spot-check entries the ranking and analyzer lean on.
	blossom := byID["cm-blossom-19"]
	if !blossom.Price.Equal(decimal.NewFromInt(19)) || blossom.Data != models.QuotaOf(30) {
		t.Errorf("cm-blossom-19 = price %s data %s, want 19/30", blossom.Price, blossom.Data)
	}
	stepup := byID["cm-stepup-19"]
	if stepup.Data != models.QuotaOf(6.6) || stepup.Calls != models.QuotaOf(50) {
		t.Errorf("cm-stepup-19 = data %s calls %s, want 6.6/50", stepup.Data, stepup.Calls)
	}
	prime := byID["cm-prime-298"]
	if prime.Data != models.QuotaOf(100) || prime.Calls != models.QuotaOf(1500) {
		t.Errorf("cm-prime-298 = data %s calls %s, want 100/1500", prime.Data, prime.Calls)
	}
}

func TestStaticProviderCopiesOnRead(t *testing.T) {
	p := ChinaUnicom()
	first, err := p.Plans(context.Background())
	if err != nil {
		t.Fatalf("Plans: %v", err)
	}
	first[0].Name = "mutated"

	again, err := p.Plans(context.Background())
	if err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if again[0].Name == "mutated" {
		t.Error("mutating a returned slice leaked into the provider")
	}
}
