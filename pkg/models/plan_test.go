package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func TestQuotaUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Quota
		wantErr bool
	}{
		{name: "number", input: `30`, want: QuotaOf(30)},
		{name: "fractional number", input: `0.1`, want: QuotaOf(0.1)},
		{name: "zero", input: `0`, want: QuotaOf(0)},
		{name: "unlimited keyword", input: `"unlimited"`, want: UnlimitedQuota()},
		{name: "unlimited uppercase", input: `"Unlimited"`, want: UnlimitedQuota()},
		{name: "unknown keyword", input: `"lots"`, wantErr: true},
		{name: "wrong type", input: `{"amount": 3}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quota
			err := json.Unmarshal([]byte(tt.input), &q)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error, got %+v", tt.input, q)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error: %v", tt.input, err)
			}
			if q != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, q, tt.want)
			}
		})
	}
}

func TestQuotaMarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Quota{
		"bounded":   QuotaOf(30),
		"unlimited": UnlimitedQuota(),
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["bounded"] != float64(30) {
		t.Errorf("bounded quota encoded as %v, want 30", out["bounded"])
	}
	if out["unlimited"] != "unlimited" {
		t.Errorf("unlimited quota encoded as %v, want \"unlimited\"", out["unlimited"])
	}
}

func TestQuotaUnmarshalYAML(t *testing.T) {
	var doc struct {
		Data  Quota `yaml:"data"`
		Calls Quota `yaml:"calls"`
	}
	src := "data: unlimited\ncalls: 500\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if !doc.Data.Unlimited {
		t.Errorf("data = %+v, want unlimited", doc.Data)
	}
	if doc.Calls != QuotaOf(500) {
		t.Errorf("calls = %+v, want 500", doc.Calls)
	}

	var bad struct {
		Data Quota `yaml:"data"`
	}
	if err := yaml.Unmarshal([]byte("data: plenty\n"), &bad); err == nil {
		t.Error("expected error for unknown quota keyword")
	}
}

func TestPlanUnmarshalYAML(t *testing.T) {
	src := `
id: cm-jade-59
carrier: China Mobile
name: Jade 59
type: 5g
price: 59.5
data: unlimited
calls: 300
features:
  - 5G coverage
`
	var p Plan
	if err := yaml.Unmarshal([]byte(src), &p); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if p.ID != "cm-jade-59" || p.Carrier != "China Mobile" {
		t.Errorf("identity = %q/%q, want cm-jade-59/China Mobile", p.ID, p.Carrier)
	}
	if p.Type != PlanType5G {
		t.Errorf("Type = %q, want %q", p.Type, PlanType5G)
	}
	if !p.Price.Equal(decimal.NewFromFloat(59.5)) {
		t.Errorf("Price = %s, want 59.5", p.Price)
	}
	if !p.Data.Unlimited {
		t.Errorf("Data = %+v, want unlimited", p.Data)
	}
	if p.Calls != QuotaOf(300) {
		t.Errorf("Calls = %+v, want 300", p.Calls)
	}

	var bad Plan
	if err := yaml.Unmarshal([]byte("name: x\nprice: twelve\n"), &bad); err == nil {
		t.Error("expected error for unparseable price")
	}
}

func TestQuotaSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		quota    Quota
		required float64
		want     bool
	}{
		{name: "ample", quota: QuotaOf(40), required: 30, want: true},
		{name: "exact", quota: QuotaOf(30), required: 30, want: true},
		{name: "short", quota: QuotaOf(20), required: 30, want: false},
		{name: "unlimited covers anything", quota: UnlimitedQuota(), required: 1e12, want: true},
		{name: "zero requirement", quota: QuotaOf(0), required: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quota.Satisfies(tt.required); got != tt.want {
				t.Errorf("Satisfies(%v) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}

func TestQuotaString(t *testing.T) {
	if got := QuotaOf(0.1).String(); got != "0.1" {
		t.Errorf("String() = %q, want %q", got, "0.1")
	}
	if got := UnlimitedQuota().String(); got != "unlimited" {
		t.Errorf("String() = %q, want %q", got, "unlimited")
	}
}
