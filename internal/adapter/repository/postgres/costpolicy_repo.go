package postgres

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// CostPolicyRepository implements usecase.CostPolicy from the zero-cost
// employee category table. The category list is business data maintained
// elsewhere in the application; this repository only mirrors it in memory
// so the aggregation hot path never touches the database per row.
type CostPolicyRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger

	mu    sync.RWMutex
	codes map[string]struct{}
}

// NewCostPolicyRepository creates a new CostPolicyRepository. Call Refresh
// before first use and keep refreshing on an interval.
func NewCostPolicyRepository(pool *pgxpool.Pool, logger zerolog.Logger) *CostPolicyRepository {
	return &CostPolicyRepository{
		pool:   pool,
		logger: logger,
		codes:  make(map[string]struct{}),
	}
}

// Refresh reloads the zero-cost employee codes. On failure the previous
// snapshot of the list stays in effect.
func (r *CostPolicyRepository) Refresh(ctx context.Context) error {
	rows, err := r.pool.Query(ctx,
		`SELECT employee_code FROM zero_cost_employees`)
	if err != nil {
		return err
	}
	defer rows.Close()

	codes := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return err
		}
		codes[code] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.codes = codes
	r.mu.Unlock()

	r.logger.Debug().Int("codes", len(codes)).Msg("zero-cost employee list refreshed")

	return nil
}

// IsZeroCost reports whether the employee's cost is elided before summing.
func (r *CostPolicyRepository) IsZeroCost(employeeCode string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codes[employeeCode]
	return ok
}
