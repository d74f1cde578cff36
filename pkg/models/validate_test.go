package models

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPlanViolations(t *testing.T) {
	tests := []struct {
		name       string
		plan       Plan
		wantFields []string
	}{
		{
			name: "well formed",
			plan: Plan{Name: "5G Prime 128", Price: decimal.NewFromInt(128), Data: QuotaOf(30), Calls: QuotaOf(500)},
		},
		{
			name:       "missing name",
			plan:       Plan{Price: decimal.NewFromInt(10)},
			wantFields: []string{"name"},
		},
		{
			name:       "negative price",
			plan:       Plan{Name: "x", Price: decimal.NewFromInt(-1)},
			wantFields: []string{"price"},
		},
		{
			name:       "negative data quota",
			plan:       Plan{Name: "x", Data: QuotaOf(-5)},
			wantFields: []string{"data"},
		},
		{
			name:       "several violations at once",
			plan:       Plan{Price: decimal.NewFromInt(-1), Calls: QuotaOf(-10)},
			wantFields: []string{"name", "price", "calls"},
		},
		{
			name: "unlimited quota is never negative",
			plan: Plan{Name: "x", Data: UnlimitedQuota(), Calls: UnlimitedQuota()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.plan.Violations()
			if len(got) != len(tt.wantFields) {
				t.Fatalf("Violations() = %d errors, want %d: %v", len(got), len(tt.wantFields), got)
			}
			for i, f := range tt.wantFields {
				if got[i].Field != f {
					t.Errorf("Violations()[%d].Field = %q, want %q", i, got[i].Field, f)
				}
			}
		})
	}
}

func TestRequirementValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       Requirement
		wantField string
	}{
		{name: "valid", req: Requirement{Data: 30, Calls: 500, Budget: decimal.NewFromInt(150)}},
		{name: "all zero is valid", req: Requirement{}},
		{name: "negative data", req: Requirement{Data: -1}, wantField: "data"},
		{name: "negative calls", req: Requirement{Calls: -1}, wantField: "calls"},
		{name: "negative budget", req: Requirement{Budget: decimal.NewFromInt(-10)}, wantField: "budget"},
		{name: "NaN data", req: Requirement{Data: math.NaN()}, wantField: "data"},
		{name: "infinite calls", req: Requirement{Calls: math.Inf(1)}, wantField: "calls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Validate().Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}
