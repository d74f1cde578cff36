package models

import (
	"fmt"
	"math"
)

// ValidationError reports a single input constraint violation with enough
// detail to fix the input: which field, what constraint.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Constraint)
}

// Violations returns every constraint violated by the plan, in field order.
// A nil-free return means the plan is well formed.
func (p *Plan) Violations() []*ValidationError {
	var errs []*ValidationError
	if p.Name == "" {
		errs = append(errs, &ValidationError{Field: "name", Constraint: "is required"})
	}
	if p.Price.IsNegative() {
		errs = append(errs, &ValidationError{Field: "price", Constraint: "must not be negative"})
	}
	if err := quotaViolation("data", p.Data); err != nil {
		errs = append(errs, err)
	}
	if err := quotaViolation("calls", p.Calls); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// Validate returns the plan's first constraint violation, or nil.
func (p *Plan) Validate() error {
	if errs := p.Violations(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Validate checks that all requirement fields are finite and non-negative.
func (r *Requirement) Validate() error {
	if err := amountViolation("data", r.Data); err != nil {
		return err
	}
	if err := amountViolation("calls", r.Calls); err != nil {
		return err
	}
	if r.Budget.IsNegative() {
		return &ValidationError{Field: "budget", Constraint: "must not be negative"}
	}
	return nil
}

func quotaViolation(field string, q Quota) *ValidationError {
	if q.Unlimited {
		return nil
	}
	return amountViolation(field, q.Amount)
}

func amountViolation(field string, v float64) *ValidationError {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &ValidationError{Field: field, Constraint: "must be a finite number"}
	case v < 0:
		return &ValidationError{Field: field, Constraint: "must not be negative"}
	}
	return nil
}
