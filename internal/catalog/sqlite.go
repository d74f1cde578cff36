package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BiiZti/5GRecommendationTool/internal/store"
	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// Compile-time interface guard.
var _ Provider = (*SQLiteProvider)(nil)

// migrations returns the catalog component's schema history.
func migrations() []store.Migration {
	return []store.Migration{
		{
			Version:     1,
			Description: "create plans table",
			Up: func(tx *sql.Tx) error {
				stmts := []string{
					`CREATE TABLE IF NOT EXISTS plans (
						id              TEXT PRIMARY KEY,
						carrier         TEXT NOT NULL,
						name            TEXT NOT NULL,
						type            TEXT NOT NULL DEFAULT '',
						price           TEXT NOT NULL,
						data_amount     REAL NOT NULL DEFAULT 0,
						data_unlimited  INTEGER NOT NULL DEFAULT 0,
						calls_amount    REAL NOT NULL DEFAULT 0,
						calls_unlimited INTEGER NOT NULL DEFAULT 0,
						features        TEXT NOT NULL DEFAULT '[]',
						position        INTEGER NOT NULL,
						created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE INDEX IF NOT EXISTS idx_plans_carrier ON plans (carrier)`,
					`CREATE INDEX IF NOT EXISTS idx_plans_position ON plans (position)`,
				}
				for _, stmt := range stmts {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// SQLiteProvider serves plans from a SQLite database. The position column
// preserves catalog order across restarts; price is stored as text so the
// decimal round-trips exactly.
type SQLiteProvider struct {
	store *store.SQLiteStore
}

// NewSQLiteProvider runs the catalog migrations and wraps the store as a
// Provider.
func NewSQLiteProvider(ctx context.Context, st *store.SQLiteStore) (*SQLiteProvider, error) {
	if err := st.Migrate(ctx, "catalog", migrations()); err != nil {
		return nil, fmt.Errorf("catalog migrations: %w", err)
	}
	return &SQLiteProvider{store: st}, nil
}

// Name implements Provider.
func (s *SQLiteProvider) Name() string {
	return "sqlite"
}

// Plans implements Provider, reading records in stored catalog order.
func (s *SQLiteProvider) Plans(ctx context.Context) ([]models.Plan, error) {
	rows, err := s.store.DB().QueryContext(ctx, `
		SELECT id, carrier, name, type, price,
		       data_amount, data_unlimited, calls_amount, calls_unlimited, features
		FROM plans
		ORDER BY position, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Count returns the number of stored plans.
func (s *SQLiteProvider) Count(ctx context.Context) (int, error) {
	var n int
	err := s.store.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM plans").Scan(&n)
	return n, err
}

// Import writes plans into the database in one transaction, appending them
// to the stored catalog order (or replacing it entirely). Records without
// an ID get one assigned. Malformed records abort the import before any
// write.
func (s *SQLiteProvider) Import(ctx context.Context, plans []models.Plan, replace bool) (int, error) {
	for i := range plans {
		if err := plans[i].Validate(); err != nil {
			return 0, fmt.Errorf("plan %d: %w", i, err)
		}
	}

	err := s.store.Tx(ctx, func(tx *sql.Tx) error {
		position := 0
		if replace {
			if _, err := tx.ExecContext(ctx, "DELETE FROM plans"); err != nil {
				return fmt.Errorf("clear plans: %w", err)
			}
		} else {
			if err := tx.QueryRowContext(ctx,
				"SELECT COALESCE(MAX(position)+1, 0) FROM plans",
			).Scan(&position); err != nil {
				return fmt.Errorf("next position: %w", err)
			}
		}

		for i := range plans {
			p := plans[i]
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			features, err := json.Marshal(p.Features)
			if err != nil {
				return fmt.Errorf("encode features for %s: %w", p.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO plans (id, carrier, name, type, price,
				                   data_amount, data_unlimited, calls_amount, calls_unlimited,
				                   features, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET
					carrier = excluded.carrier,
					name = excluded.name,
					type = excluded.type,
					price = excluded.price,
					data_amount = excluded.data_amount,
					data_unlimited = excluded.data_unlimited,
					calls_amount = excluded.calls_amount,
					calls_unlimited = excluded.calls_unlimited,
					features = excluded.features
			`,
				p.ID, p.Carrier, p.Name, string(p.Type), p.Price.String(),
				p.Data.Amount, boolToInt(p.Data.Unlimited),
				p.Calls.Amount, boolToInt(p.Calls.Unlimited),
				string(features), position+i,
			)
			if err != nil {
				return fmt.Errorf("insert %s: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(plans), nil
}

func scanPlan(rows *sql.Rows) (models.Plan, error) {
	var (
		p              models.Plan
		typ, price     string
		dataUnlimited  int
		callsUnlimited int
		features       string
	)
	err := rows.Scan(&p.ID, &p.Carrier, &p.Name, &typ, &price,
		&p.Data.Amount, &dataUnlimited, &p.Calls.Amount, &callsUnlimited, &features)
	if err != nil {
		return p, fmt.Errorf("scan plan: %w", err)
	}

	p.Type = models.PlanType(typ)
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return p, fmt.Errorf("plan %s: parse price %q: %w", p.ID, price, err)
	}
	p.Data.Unlimited = dataUnlimited != 0
	p.Calls.Unlimited = callsUnlimited != 0
	if features != "" {
		if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
			return p, fmt.Errorf("plan %s: parse features: %w", p.ID, err)
		}
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
