package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/internal/engine"
	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// RecommendRequest is the body for POST /recommend. Absent data, calls,
// and budget fields count as zero. Weight overrides must be set together.
// @Description A user requirement with optional per-request engine overrides.
type RecommendRequest struct {
	Data             float64         `json:"data" validate:"gte=0" example:"30"`
	Calls            float64         `json:"calls" validate:"gte=0" example:"500"`
	Budget           decimal.Decimal `json:"budget" swaggertype:"number" example:"150"`
	Carrier          string          `json:"carrier,omitempty" validate:"omitempty,max=64" example:"China Mobile"`
	MaxResults       int             `json:"max_results,omitempty" validate:"omitempty,min=1,max=100" example:"10"`
	FunctionalWeight *float64        `json:"functional_weight,omitempty" validate:"omitempty,gte=0,lte=1"`
	PriceWeight      *float64        `json:"price_weight,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Requirement converts the request into the engine's input type.
func (r *RecommendRequest) Requirement() models.Requirement {
	return models.Requirement{
		Data:   r.Data,
		Calls:  r.Calls,
		Budget: r.Budget,
	}
}

// engineConfig applies the request's overrides to the given defaults and
// validates the result.
func (r *RecommendRequest) engineConfig(defaults engine.Config) (engine.Config, error) {
	cfg := defaults
	if (r.FunctionalWeight == nil) != (r.PriceWeight == nil) {
		return cfg, errors.New("functional_weight and price_weight must be set together")
	}
	if r.FunctionalWeight != nil {
		cfg.FunctionalWeight = *r.FunctionalWeight
		cfg.PriceWeight = *r.PriceWeight
	}
	if r.MaxResults > 0 {
		cfg.MaxResults = r.MaxResults
	}
	return cfg, cfg.Validate()
}

// BatchRecommendRequest is the body for POST /recommend/batch.
// @Description A bounded list of requirements evaluated independently.
type BatchRecommendRequest struct {
	Requests []RecommendRequest `json:"requests" validate:"required,min=1,max=50,dive"`
}

// UpdateConfigRequest is the body for PUT /config. All fields are
// optional; weights must be set together.
// @Description Partial update of the engine's default configuration.
type UpdateConfigRequest struct {
	FunctionalWeight *float64 `json:"functional_weight" validate:"omitempty,gte=0,lte=1"`
	PriceWeight      *float64 `json:"price_weight" validate:"omitempty,gte=0,lte=1"`
	MaxResults       *int     `json:"max_results" validate:"omitempty,min=1,max=100"`
}

// ValidatePlansRequest is the body for POST /plans/validate.
// @Description A plan list to check against catalog constraints.
type ValidatePlansRequest struct {
	Plans []models.Plan `json:"plans" validate:"required,min=1"`
}

// newValidator builds the request validator, reporting field names by
// their json tags.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct validation and flattens the first failure
// into a message suitable for a problem response.
func (s *Server) validateRequest(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		f := fields[0]
		if f.Param() != "" {
			return fmt.Errorf("%s: failed %s=%s validation", f.Field(), f.Tag(), f.Param())
		}
		return fmt.Errorf("%s: failed %s validation", f.Field(), f.Tag())
	}
	return err
}
