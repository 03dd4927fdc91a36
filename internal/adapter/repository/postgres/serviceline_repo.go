package postgres

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ServiceLineRepository implements usecase.ServiceLineMap from the
// service-line mapping table. The mapping only groups results by dimension;
// it never alters individual transaction values.
type ServiceLineRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger

	mu      sync.RWMutex
	masters map[string]string
}

// NewServiceLineRepository creates a new ServiceLineRepository. Call
// Refresh before first use and keep refreshing on an interval.
func NewServiceLineRepository(pool *pgxpool.Pool, logger zerolog.Logger) *ServiceLineRepository {
	return &ServiceLineRepository{
		pool:    pool,
		logger:  logger,
		masters: make(map[string]string),
	}
}

// Refresh reloads the code to master-code mapping. On failure the previous
// mapping stays in effect.
func (r *ServiceLineRepository) Refresh(ctx context.Context) error {
	rows, err := r.pool.Query(ctx,
		`SELECT code, master_code FROM service_lines`)
	if err != nil {
		return err
	}
	defer rows.Close()

	masters := make(map[string]string)
	for rows.Next() {
		var code, master string
		if err := rows.Scan(&code, &master); err != nil {
			return err
		}
		masters[code] = master
	}
	if err := rows.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.masters = masters
	r.mu.Unlock()

	r.logger.Debug().Int("codes", len(masters)).Msg("service line mapping refreshed")

	return nil
}

// MasterCode resolves a service-line code to its master code. Unknown codes
// map to themselves so no transaction changes group unexpectedly.
func (r *ServiceLineRepository) MasterCode(code string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if master, ok := r.masters[code]; ok && master != "" {
		return master
	}
	return code
}
