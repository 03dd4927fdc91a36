package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tallyworks/wipengine/internal/domain"
	"github.com/tallyworks/wipengine/internal/infrastructure/metrics"
)

// WipConfig holds dependencies for WipUseCase.
type WipConfig struct {
	Ledger       LedgerReader
	Cache        CacheStore
	Versions     VersionStore
	CostPolicy   CostPolicy
	ServiceLines ServiceLineMap
	TTL          TTLPolicy
	IDGen        IDGenerator
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

// WipUseCase serves balance snapshots, profitability and debtor aging from
// the layered cache, recomputing from the ledger on a miss. Concurrent
// misses for the same key share one computation.
type WipUseCase struct {
	ledger   LedgerReader
	cache    CacheStore
	versions VersionStore
	agg      *AggregationEngine
	aging    *DebtorAgingEngine
	lines    ServiceLineMap
	ttl      TTLPolicy
	idGen    IDGenerator
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	group    singleflight.Group
}

// NewWipUseCase creates a new WipUseCase.
func NewWipUseCase(cfg WipConfig) *WipUseCase {
	ttl := cfg.TTL
	if ttl == (TTLPolicy{}) {
		ttl = DefaultTTLPolicy()
	}

	return &WipUseCase{
		ledger:   cfg.Ledger,
		cache:    cfg.Cache,
		versions: cfg.Versions,
		agg:      NewAggregationEngine(cfg.CostPolicy),
		aging:    NewDebtorAgingEngine(),
		lines:    cfg.ServiceLines,
		ttl:      ttl,
		idGen:    cfg.IDGen,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}
}

// GetSnapshot returns the balance snapshot of one entity along one
// dimension, from cache when possible.
func (uc *WipUseCase) GetSnapshot(ctx context.Context, kind domain.EntityKind, id string, dim domain.Dimension) (*domain.SnapshotResult, error) {
	if _, err := domain.ParseEntityKind(string(kind)); err != nil {
		return nil, err
	}
	if _, err := domain.ParseDimension(string(dim)); err != nil {
		return nil, err
	}

	key := cacheKey(kind, id, uc.versions.Current(ctx, kind, id), dim)

	if raw, ok, _ := uc.cache.Get(ctx, key); ok {
		var res domain.SnapshotResult
		if err := json.Unmarshal(raw, &res); err == nil {
			return &res, nil
		}
		uc.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}

	value, err := uc.flight(ctx, key, func(ctx context.Context) (any, error) {
		return uc.computeSnapshot(ctx, key, kind, id, dim)
	})
	if err != nil {
		return nil, err
	}

	return value.(*domain.SnapshotResult), nil
}

// GetProfitability derives profitability metrics from the overall snapshot.
func (uc *WipUseCase) GetProfitability(ctx context.Context, kind domain.EntityKind, id string) (*domain.Profitability, error) {
	res, err := uc.GetSnapshot(ctx, kind, id, domain.DimensionOverall)
	if err != nil {
		return nil, err
	}

	p := uc.agg.Profitability(res.Overall)

	return &p, nil
}

// GetAging returns the debtor aging buckets for an entity as of the given
// date. A zero asOf means today. Results are cached per as-of date.
func (uc *WipUseCase) GetAging(ctx context.Context, kind domain.EntityKind, id string, asOf time.Time) (*domain.AgingBuckets, error) {
	if _, err := domain.ParseEntityKind(string(kind)); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC().Truncate(24 * time.Hour)
	}

	key := cacheKey(kind, id, uc.versions.Current(ctx, kind, id),
		domain.DimensionAging, asOf.Format("2006-01-02"))

	if raw, ok, _ := uc.cache.Get(ctx, key); ok {
		var buckets domain.AgingBuckets
		if err := json.Unmarshal(raw, &buckets); err == nil {
			return &buckets, nil
		}
		uc.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}

	value, err := uc.flight(ctx, key, func(ctx context.Context) (any, error) {
		return uc.computeAging(ctx, key, kind, id, asOf)
	})
	if err != nil {
		return nil, err
	}

	return value.(*domain.AgingBuckets), nil
}

// CacheHealth reports the state of the distributed cache tier.
func (uc *WipUseCase) CacheHealth(ctx context.Context) domain.CacheHealth {
	return uc.cache.Health(ctx)
}

// flight runs fn under single-flight for key. A cancelled caller gets its
// context error, but the computation keeps running detached so the other
// waiters still get a result and the cache still gets populated. Errors
// propagate to every waiter and are never cached; the key clears on return
// so a later call can retry.
func (uc *WipUseCase) flight(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)

	ch := uc.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared && uc.metrics != nil {
			uc.metrics.SingleflightJoins.Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	}
}

func (uc *WipUseCase) computeSnapshot(ctx context.Context, key string, kind domain.EntityKind, id string, dim domain.Dimension) (*domain.SnapshotResult, error) {
	start := time.Now()
	computationID := uc.generateID()

	txns, err := uc.fetch(ctx, kind, id, LedgerFilter{})
	if err != nil {
		return nil, err
	}

	res := &domain.SnapshotResult{
		EntityKind: kind,
		EntityID:   id,
		Dimension:  dim,
		ComputedAt: time.Now().UTC(),
	}

	switch dim {
	case domain.DimensionByServiceLine:
		res.Groups, err = uc.agg.ReduceGrouped(txns, func(t domain.Transaction) string {
			return t.ServiceLineCode
		})
	case domain.DimensionByMasterServiceLine:
		res.Groups, err = uc.agg.ReduceGrouped(txns, func(t domain.Transaction) string {
			return uc.masterCode(t.ServiceLineCode)
		})
	default:
		res.Overall, err = uc.agg.Reduce(txns)
	}
	if err != nil {
		return nil, err
	}

	uc.store(ctx, key, res, uc.ttl.For(kind, dim))

	if uc.metrics != nil {
		uc.metrics.RecomputeDuration.WithLabelValues(string(dim)).Observe(time.Since(start).Seconds())
		uc.metrics.RecomputeTotal.WithLabelValues(string(dim)).Inc()
	}
	uc.logger.Debug().
		Str("computation_id", computationID).
		Str("entity_kind", string(kind)).
		Str("entity_id", id).
		Str("dimension", string(dim)).
		Int("rows", len(txns)).
		Dur("duration", time.Since(start)).
		Msg("snapshot recomputed")

	return res, nil
}

func (uc *WipUseCase) computeAging(ctx context.Context, key string, kind domain.EntityKind, id string, asOf time.Time) (*domain.AgingBuckets, error) {
	start := time.Now()
	computationID := uc.generateID()

	rows, err := uc.fetch(ctx, kind, id, LedgerFilter{Kinds: []domain.TransactionKind{domain.KindDebtor}})
	if err != nil {
		return nil, err
	}

	buckets, err := uc.aging.Age(rows, asOf)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, key, buckets, uc.ttl.For(kind, domain.DimensionAging))

	if uc.metrics != nil {
		uc.metrics.RecomputeDuration.WithLabelValues(string(domain.DimensionAging)).Observe(time.Since(start).Seconds())
		uc.metrics.RecomputeTotal.WithLabelValues(string(domain.DimensionAging)).Inc()
	}
	uc.logger.Debug().
		Str("computation_id", computationID).
		Str("entity_kind", string(kind)).
		Str("entity_id", id).
		Int("rows", len(rows)).
		Dur("duration", time.Since(start)).
		Msg("aging recomputed")

	return buckets, nil
}

// fetch reads from the ledger, tagging failures with the ledger taxonomy so
// callers can tell "no valid snapshot possible" from cache degradation.
func (uc *WipUseCase) fetch(ctx context.Context, kind domain.EntityKind, id string, filter LedgerFilter) ([]domain.Transaction, error) {
	txns, err := uc.ledger.FetchTransactions(ctx, kind, id, filter)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.LedgerErrors.Inc()
		}
		if errors.Is(err, domain.ErrLedgerUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	return txns, nil
}

// store serialises a computed value into the cache. Cache failures only
// degrade; the computed value is returned to callers regardless.
func (uc *WipUseCase) store(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		uc.logger.Error().Err(err).Str("key", key).Msg("failed to serialize cache entry")
		return
	}
	if err := uc.cache.Set(ctx, key, raw, ttl); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("failed to populate cache")
	}
}

func (uc *WipUseCase) generateID() string {
	if uc.idGen == nil {
		return ""
	}
	return uc.idGen.Generate()
}

func (uc *WipUseCase) masterCode(code string) string {
	if uc.lines == nil {
		return code
	}
	return uc.lines.MasterCode(code)
}
