package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanType categorizes a service plan offering.
type PlanType string

const (
	PlanType5G           PlanType = "5g"
	PlanType4G           PlanType = "4g"
	PlanTypeInternetCard PlanType = "internet_card"
	PlanTypeBundle       PlanType = "bundle"
)

// unlimitedKeyword is the wire representation of an unlimited quota in
// JSON and YAML plan documents.
const unlimitedKeyword = "unlimited"

// Quota is a monthly allowance: either a non-negative amount or unlimited.
// On the wire it is a plain number, or the string "unlimited".
type Quota struct {
	Amount    float64
	Unlimited bool
}

// QuotaOf returns a bounded quota with the given amount.
func QuotaOf(amount float64) Quota {
	return Quota{Amount: amount}
}

// UnlimitedQuota returns the unlimited sentinel.
func UnlimitedQuota() Quota {
	return Quota{Unlimited: true}
}

// Satisfies reports whether the quota covers the required amount.
// An unlimited quota satisfies any requirement.
func (q Quota) Satisfies(required float64) bool {
	return q.Unlimited || q.Amount >= required
}

// String renders the quota without a unit: "unlimited" or the bare amount.
func (q Quota) String() string {
	if q.Unlimited {
		return unlimitedKeyword
	}
	return strconv.FormatFloat(q.Amount, 'f', -1, 64)
}

// MarshalJSON encodes the quota as a number, or "unlimited".
func (q Quota) MarshalJSON() ([]byte, error) {
	if q.Unlimited {
		return json.Marshal(unlimitedKeyword)
	}
	return json.Marshal(q.Amount)
}

// UnmarshalJSON accepts a JSON number or the string "unlimited".
func (q *Quota) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if !strings.EqualFold(s, unlimitedKeyword) {
			return fmt.Errorf("invalid quota %q: want a number or %q", s, unlimitedKeyword)
		}
		*q = Quota{Unlimited: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid quota: %w", err)
	}
	*q = Quota{Amount: v}
	return nil
}

// MarshalYAML encodes the quota as a number, or "unlimited".
func (q Quota) MarshalYAML() (interface{}, error) {
	if q.Unlimited {
		return unlimitedKeyword, nil
	}
	return q.Amount, nil
}

// UnmarshalYAML accepts a YAML number or the string "unlimited".
func (q *Quota) UnmarshalYAML(value *yaml.Node) error {
	var v float64
	if err := value.Decode(&v); err == nil {
		*q = Quota{Amount: v}
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid quota: %w", err)
	}
	if !strings.EqualFold(s, unlimitedKeyword) {
		return fmt.Errorf("invalid quota %q: want a number or %q", s, unlimitedKeyword)
	}
	*q = Quota{Unlimited: true}
	return nil
}

// Plan represents one purchasable plan offering. Data quotas are in GB,
// call quotas in minutes; Price and Requirement.Budget share one currency
// unit. Plans are built when a catalog loads and are read-only afterwards.
type Plan struct {
	ID       string          `json:"id" yaml:"id"`
	Carrier  string          `json:"carrier" yaml:"carrier"`
	Name     string          `json:"name" yaml:"name"`
	Type     PlanType        `json:"type,omitempty" yaml:"type,omitempty"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Data     Quota           `json:"data" yaml:"data"`
	Calls    Quota           `json:"calls" yaml:"calls"`
	Features []string        `json:"features,omitempty" yaml:"features,omitempty"`
}

// UnmarshalYAML decodes a plan mapping. Price accepts any scalar the
// decimal parser understands; the YAML decoder itself cannot fill a
// decimal directly.
func (p *Plan) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ID       string   `yaml:"id"`
		Carrier  string   `yaml:"carrier"`
		Name     string   `yaml:"name"`
		Type     PlanType `yaml:"type"`
		Price    string   `yaml:"price"`
		Data     Quota    `yaml:"data"`
		Calls    Quota    `yaml:"calls"`
		Features []string `yaml:"features"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	price := decimal.Zero
	if raw.Price != "" {
		var err error
		price, err = decimal.NewFromString(raw.Price)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", raw.Price, err)
		}
	}
	*p = Plan{
		ID:       raw.ID,
		Carrier:  raw.Carrier,
		Name:     raw.Name,
		Type:     raw.Type,
		Price:    price,
		Data:     raw.Data,
		Calls:    raw.Calls,
		Features: raw.Features,
	}
	return nil
}
