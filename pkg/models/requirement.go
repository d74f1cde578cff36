package models

import "github.com/shopspring/decimal"

// Requirement captures a user's declared monthly needs: data in GB, calls
// in minutes, and a budget ceiling in the catalog's currency unit. It is
// built per request and never retained.
type Requirement struct {
	Data   float64         `json:"data"`
	Calls  float64         `json:"calls"`
	Budget decimal.Decimal `json:"budget"`
}
