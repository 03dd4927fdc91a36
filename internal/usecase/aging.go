package usecase

import (
	"fmt"
	"time"

	"github.com/tallyworks/wipengine/internal/domain"
)

// Aging bucket boundaries in days. Lower edges inclusive, upper edges
// exclusive; the last bucket is unbounded above.
const (
	agingBucket1Max = 30
	agingBucket2Max = 60
	agingBucket3Max = 90
)

// DebtorAgingEngine reduces debtor rows into aging buckets. It shares the
// reduce discipline of AggregationEngine: order-independent, no row dropped.
type DebtorAgingEngine struct{}

// NewDebtorAgingEngine creates a new DebtorAgingEngine.
func NewDebtorAgingEngine() *DebtorAgingEngine {
	return &DebtorAgingEngine{}
}

// Age buckets rows by asOf minus their occurrence time. Only DEBTOR rows are
// legal input. Rows dated after asOf are clamped into the first bucket and
// counted in FutureDated; there is no negative bucket.
func (e *DebtorAgingEngine) Age(rows []domain.Transaction, asOf time.Time) (*domain.AgingBuckets, error) {
	buckets := domain.NewAgingBuckets(asOf)

	for i := range rows {
		r := &rows[i]
		if r.Kind != domain.KindDebtor {
			return nil, fmt.Errorf("%w: kind %q", domain.ErrNotDebtorRow, r.Kind)
		}

		age := asOf.Sub(r.OccurredAt)
		if age < 0 {
			age = 0
			buckets.FutureDated++
		}
		days := int(age.Hours() / 24)

		switch {
		case days <= agingBucket1Max:
			buckets.Current = buckets.Current.Add(r.Amount)
		case days <= agingBucket2Max:
			buckets.Days31To60 = buckets.Days31To60.Add(r.Amount)
		case days <= agingBucket3Max:
			buckets.Days61To90 = buckets.Days61To90.Add(r.Amount)
		default:
			buckets.Over90 = buckets.Over90.Add(r.Amount)
		}

		buckets.Total = buckets.Total.Add(r.Amount)
	}

	if err := buckets.CheckTotal(); err != nil {
		return nil, err
	}

	return buckets, nil
}
