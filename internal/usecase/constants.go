package usecase

import (
	"time"

	"github.com/tallyworks/wipengine/internal/domain"
)

const (
	// DefaultOverallTTL bounds staleness of entity-scoped overall snapshots,
	// which change most often relative to read volume.
	DefaultOverallTTL = 5 * time.Minute

	// DefaultGroupedTTL applies to the per-service-line dimensions.
	DefaultGroupedTTL = 15 * time.Minute

	// DefaultAgingTTL applies to cached debtor aging results.
	DefaultAgingTTL = 15 * time.Minute

	// DefaultFirmTTL applies to firm-wide rollups regardless of dimension.
	DefaultFirmTTL = 30 * time.Minute
)

// TTLPolicy maps a (entity kind, dimension) pair to a cache TTL.
type TTLPolicy struct {
	Overall time.Duration
	Grouped time.Duration
	Aging   time.Duration
	Firm    time.Duration
}

// DefaultTTLPolicy returns the stock per-dimension TTLs.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Overall: DefaultOverallTTL,
		Grouped: DefaultGroupedTTL,
		Aging:   DefaultAgingTTL,
		Firm:    DefaultFirmTTL,
	}
}

// For returns the TTL for one cached entry. Firm-wide entries use the long
// TTL for every dimension because they aggregate the whole ledger and are
// read far more often than they change.
func (p TTLPolicy) For(kind domain.EntityKind, dim domain.Dimension) time.Duration {
	if kind == domain.EntityFirm {
		return p.Firm
	}
	switch dim {
	case domain.DimensionByServiceLine, domain.DimensionByMasterServiceLine:
		return p.Grouped
	case domain.DimensionAging:
		return p.Aging
	default:
		return p.Overall
	}
}
