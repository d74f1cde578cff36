package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BiiZti/5GRecommendationTool/internal/catalog"
	"github.com/BiiZti/5GRecommendationTool/internal/engine"
	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// RecommendResponse is the outcome of one recommendation request.
// @Description A ranked plan list, or a failure report when nothing qualified.
type RecommendResponse struct {
	Matched         bool                     `json:"matched"`
	Count           int                      `json:"count"`
	Recommendations []models.ScoredCandidate `json:"recommendations"`
	Failure         *models.FailureReport    `json:"failure,omitempty"`
}

// BatchResult pairs one batch item's outcome with its position in the
// request. Error is set when the item could not be evaluated at all.
type BatchResult struct {
	Index           int                      `json:"index"`
	Matched         bool                     `json:"matched"`
	Count           int                      `json:"count"`
	Recommendations []models.ScoredCandidate `json:"recommendations,omitempty"`
	Failure         *models.FailureReport    `json:"failure,omitempty"`
	Error           string                   `json:"error,omitempty"`
}

// requestError maps an internal failure onto an HTTP status for the
// problem response.
type requestError struct {
	status int
	detail string
}

func (e *requestError) Error() string { return e.detail }

// writeRequestError renders err as an RFC 7807 problem.
func writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var rerr *requestError
	if !errors.As(err, &rerr) {
		InternalError(w, "unexpected error", r.URL.Path)
		return
	}
	switch rerr.status {
	case http.StatusBadRequest:
		BadRequest(w, rerr.detail, r.URL.Path)
	case http.StatusNotFound:
		NotFound(w, rerr.detail, r.URL.Path)
	case http.StatusServiceUnavailable:
		ServiceUnavailable(w, rerr.detail, r.URL.Path)
	default:
		InternalError(w, rerr.detail, r.URL.Path)
	}
}

// runRecommendation evaluates one requirement against the catalog,
// translating every failure into a requestError.
func (s *Server) runRecommendation(ctx context.Context, req *RecommendRequest) (*RecommendResponse, error) {
	cfg, err := req.engineConfig(s.engineDefaults())
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, detail: err.Error()}
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, detail: err.Error()}
	}

	var plans []models.Plan
	if req.Carrier != "" {
		plans, err = s.catalog.PlansByCarrier(ctx, req.Carrier)
		if err == nil && len(plans) == 0 {
			return nil, &requestError{
				status: http.StatusNotFound,
				detail: fmt.Sprintf("carrier %q not found", req.Carrier),
			}
		}
	} else {
		plans, err = s.catalog.Plans(ctx)
	}
	if err != nil {
		s.logger.Error("catalog read failed", zap.Error(err))
		return nil, &requestError{status: http.StatusInternalServerError, detail: "failed to load catalog"}
	}

	result, err := eng.Recommend(plans, req.Requirement())
	if err != nil {
		if errors.Is(err, engine.ErrEmptyCatalog) {
			return nil, &requestError{status: http.StatusServiceUnavailable, detail: "plan catalog is empty"}
		}
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return nil, &requestError{status: http.StatusBadRequest, detail: err.Error()}
		}
		s.logger.Error("recommendation failed", zap.Error(err))
		return nil, &requestError{status: http.StatusInternalServerError, detail: "recommendation failed"}
	}

	res := &RecommendResponse{
		Matched:         result.Matched(),
		Count:           len(result.Recommendations),
		Recommendations: result.Recommendations,
		Failure:         result.Failure,
	}
	if res.Recommendations == nil {
		res.Recommendations = []models.ScoredCandidate{}
	}
	return res, nil
}

// handleRecommend ranks catalog plans for one requirement.
//
//	@Summary		Recommend plans
//	@Description	Rank plans within budget for the given data, call, and budget requirement.
//	@Tags			recommend
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RecommendRequest	true	"User requirement"
//	@Success		200		{object}	RecommendResponse	"Ranked plans or failure report"
//	@Failure		400		{object}	Problem				"Malformed or invalid requirement"
//	@Failure		404		{object}	Problem				"Unknown carrier"
//	@Failure		503		{object}	Problem				"Catalog is empty"
//	@Router			/recommend [post]
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	res, err := s.runRecommendation(r.Context(), &req)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	RecordRecommendation(res.Matched, res.Count)
	writeJSON(w, http.StatusOK, res)
}

// handleRecommendBatch evaluates several requirements in one call.
//
//	@Summary		Recommend plans in batch
//	@Description	Evaluate up to 50 requirements independently; items fail individually.
//	@Tags			recommend
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchRecommendRequest	true	"Requirements"
//	@Success		200		{object}	map[string]any			"Per-item results"
//	@Failure		400		{object}	Problem					"Malformed batch"
//	@Router			/recommend/batch [post]
func (s *Server) handleRecommendBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	results := make([]BatchResult, 0, len(req.Requests))
	for i := range req.Requests {
		res, err := s.runRecommendation(r.Context(), &req.Requests[i])
		if err != nil {
			results = append(results, BatchResult{Index: i, Error: err.Error()})
			continue
		}
		RecordRecommendation(res.Matched, res.Count)
		results = append(results, BatchResult{
			Index:           i,
			Matched:         res.Matched,
			Count:           res.Count,
			Recommendations: res.Recommendations,
			Failure:         res.Failure,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// handleCarriers lists the carriers present in the catalog.
//
//	@Summary		List carriers
//	@Description	Distinct carrier names in catalog order.
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	map[string]any	"Carrier names"
//	@Failure		500	{object}	Problem			"Catalog read failure"
//	@Router			/carriers [get]
func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	carriers, err := s.catalog.Carriers(r.Context())
	if err != nil {
		s.logger.Error("catalog read failed", zap.Error(err))
		InternalError(w, "failed to load catalog", r.URL.Path)
		return
	}
	if carriers == nil {
		carriers = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"carriers": carriers,
		"count":    len(carriers),
	})
}

// handlePlans lists catalog plans, optionally filtered by carrier.
//
//	@Summary		List plans
//	@Description	All catalog plans in catalog order; filter with ?carrier=.
//	@Tags			catalog
//	@Produce		json
//	@Param			carrier	query		string			false	"Carrier name"
//	@Success		200		{object}	map[string]any	"Plans"
//	@Failure		404		{object}	Problem			"Unknown carrier"
//	@Failure		500		{object}	Problem			"Catalog read failure"
//	@Router			/plans [get]
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	var (
		plans   []models.Plan
		err     error
		carrier = r.URL.Query().Get("carrier")
	)
	if carrier != "" {
		plans, err = s.catalog.PlansByCarrier(r.Context(), carrier)
		if err == nil && len(plans) == 0 {
			NotFound(w, fmt.Sprintf("carrier %q not found", carrier), r.URL.Path)
			return
		}
	} else {
		plans, err = s.catalog.Plans(r.Context())
	}
	if err != nil {
		s.logger.Error("catalog read failed", zap.Error(err))
		InternalError(w, "failed to load catalog", r.URL.Path)
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"plans": plans,
		"count": len(plans),
	})
}

// handleValidatePlans checks submitted plans against catalog constraints.
//
//	@Summary		Validate plans
//	@Description	Report every constraint violation in the submitted plan list.
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ValidatePlansRequest	true	"Plans to check"
//	@Success		200		{object}	map[string]any			"Validation report"
//	@Failure		400		{object}	Problem					"Malformed request"
//	@Router			/plans/validate [post]
func (s *Server) handleValidatePlans(w http.ResponseWriter, r *http.Request) {
	var req ValidatePlansRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	issues := catalog.ValidateAll(req.Plans)
	if issues == nil {
		issues = []catalog.PlanIssues{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":  len(issues) == 0,
		"count":  len(req.Plans),
		"issues": issues,
	})
}

// handleGetConfig returns the engine's current default configuration.
//
//	@Summary		Get engine configuration
//	@Description	Current default weights and result cap.
//	@Tags			config
//	@Produce		json
//	@Success		200	{object}	engine.Config	"Current defaults"
//	@Router			/config [get]
func (s *Server) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engineDefaults())
}

// handleUpdateConfig adjusts the engine defaults for this process.
//
//	@Summary		Update engine configuration
//	@Description	Partially update default weights and result cap; weights must move together and sum to 1.
//	@Tags			config
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateConfigRequest	true	"Fields to change"
//	@Success		200		{object}	engine.Config		"Updated defaults"
//	@Failure		400		{object}	Problem				"Invalid configuration"
//	@Router			/config [put]
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	if (req.FunctionalWeight == nil) != (req.PriceWeight == nil) {
		BadRequest(w, "functional_weight and price_weight must be set together", r.URL.Path)
		return
	}

	cfg := s.engineDefaults()
	if req.FunctionalWeight != nil {
		cfg.FunctionalWeight = *req.FunctionalWeight
		cfg.PriceWeight = *req.PriceWeight
	}
	if req.MaxResults != nil {
		cfg.MaxResults = *req.MaxResults
	}
	if err := cfg.Validate(); err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	s.setEngineDefaults(cfg)
	s.logger.Info("engine defaults updated",
		zap.Float64("functional_weight", cfg.FunctionalWeight),
		zap.Float64("price_weight", cfg.PriceWeight),
		zap.Int("max_results", cfg.MaxResults),
	)
	writeJSON(w, http.StatusOK, cfg)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
