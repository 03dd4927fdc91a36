package usecase

import (
	"context"
	"time"

	"github.com/tallyworks/wipengine/internal/domain"
)

// LedgerFilter narrows a transaction fetch.
type LedgerFilter struct {
	From  time.Time
	To    time.Time
	Kinds []domain.TransactionKind
}

// LedgerReader supplies raw transaction rows for an entity. It is a pure
// data source; callers own all caching.
type LedgerReader interface {
	FetchTransactions(ctx context.Context, kind domain.EntityKind, id string, filter LedgerFilter) ([]domain.Transaction, error)
}

// CostPolicy decides whether an employee's cost is elided before summing.
// The category list is business data owned by an external collaborator.
type CostPolicy interface {
	IsZeroCost(employeeCode string) bool
}

// ServiceLineMap resolves a service-line code to its master code. Unknown
// codes map to themselves.
type ServiceLineMap interface {
	MasterCode(code string) string
}

// CacheStore is the layered cache. Implementations must degrade to a miss
// or a no-op when a tier is unreachable; they never surface tier failures
// as errors on the read path.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Health(ctx context.Context) domain.CacheHealth
}

// VersionStore tracks a monotonically increasing version per entity. The
// version is part of every cache key, so bumping it makes all of an
// entity's cached entries unreachable at once.
type VersionStore interface {
	Current(ctx context.Context, kind domain.EntityKind, id string) int64
	Bump(ctx context.Context, kind domain.EntityKind, id string) int64
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
