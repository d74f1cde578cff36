// Package catalog aggregates plan records from registered providers into
// the ordered, immutable snapshots the recommendation engine consumes.
// Providers are registered once at startup; reads are concurrent-safe.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// Provider supplies plan records from one source. Implementations return a
// fresh slice on every call; callers own the result.
type Provider interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Plans returns the source's records in its canonical order.
	Plans(ctx context.Context) ([]models.Plan, error)
}

// Manager merges plans from every registered provider. Registration order
// defines the catalog order, which the engine uses as the final ranking
// tie-break.
type Manager struct {
	mu        sync.RWMutex
	providers []Provider
	logger    *zap.Logger
}

// NewManager creates an empty Manager. A nil logger disables logging.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Register appends a provider. Later registrations sort after earlier ones
// in the merged catalog.
func (m *Manager) Register(p Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers = append(m.providers, p)
	m.logger.Debug("catalog provider registered", zap.String("provider", p.Name()))
}

// Plans returns the merged catalog snapshot: every provider's plans, in
// registration order then source order.
func (m *Manager) Plans(ctx context.Context) ([]models.Plan, error) {
	m.mu.RLock()
	providers := make([]Provider, len(m.providers))
	copy(providers, m.providers)
	m.mu.RUnlock()

	var all []models.Plan
	for _, p := range providers {
		plans, err := p.Plans(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
		}
		all = append(all, plans...)
	}
	return all, nil
}

// PlansByCarrier returns the subset of the catalog whose records carry the
// given carrier name, preserving catalog order. An unknown carrier yields
// an empty slice, not an error.
func (m *Manager) PlansByCarrier(ctx context.Context, carrier string) ([]models.Plan, error) {
	all, err := m.Plans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Plan, 0, len(all))
	for i := range all {
		if all[i].Carrier == carrier {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Carriers lists the distinct carrier names in first-appearance order.
func (m *Manager) Carriers(ctx context.Context) ([]string, error) {
	all, err := m.Plans(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, 4)
	var carriers []string
	for i := range all {
		if c := all[i].Carrier; c != "" && !seen[c] {
			seen[c] = true
			carriers = append(carriers, c)
		}
	}
	return carriers, nil
}
