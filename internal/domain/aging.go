package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgingBuckets classifies outstanding debtor balances by days since the row
// occurred. Lower edges are inclusive, upper edges exclusive; the last bucket
// is unbounded. Future-dated rows are clamped into Current and counted.
type AgingBuckets struct {
	AsOf        time.Time       `json:"as_of"`
	Current     decimal.Decimal `json:"current"`       // 0-30 days
	Days31To60  decimal.Decimal `json:"days_31_to_60"` // 31-60 days
	Days61To90  decimal.Decimal `json:"days_61_to_90"` // 61-90 days
	Over90      decimal.Decimal `json:"over_90"`
	Total       decimal.Decimal `json:"total"`
	FutureDated int             `json:"future_dated"`
}

// NewAgingBuckets returns empty buckets as of the given time.
func NewAgingBuckets(asOf time.Time) *AgingBuckets {
	return &AgingBuckets{
		AsOf:       asOf,
		Current:    decimal.Zero,
		Days31To60: decimal.Zero,
		Days61To90: decimal.Zero,
		Over90:     decimal.Zero,
		Total:      decimal.Zero,
	}
}

// CheckTotal recomputes the grand total from the buckets and compares it to
// Total. Monitoring hooks use it to assert no row was silently dropped.
func (a *AgingBuckets) CheckTotal() error {
	sum := a.Current.Add(a.Days31To60).Add(a.Days61To90).Add(a.Over90)
	if !sum.Equal(a.Total) {
		return ErrAgingTotalMismatch
	}
	return nil
}
