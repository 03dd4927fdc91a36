package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is the derived WIP position of one entity along one
// dimension. All monetary fields are exact decimals; GrossWip and NetWip are
// always recomputed from the category totals, never stored independently.
type BalanceSnapshot struct {
	Time                    decimal.Decimal `json:"time"`
	TimeAdjustments         decimal.Decimal `json:"time_adjustments"`
	Disbursements           decimal.Decimal `json:"disbursements"`
	DisbursementAdjustments decimal.Decimal `json:"disbursement_adjustments"`
	Fees                    decimal.Decimal `json:"fees"`
	Provision               decimal.Decimal `json:"provision"`
	GrossWip                decimal.Decimal `json:"gross_wip"`
	NetWip                  decimal.Decimal `json:"net_wip"`
	DebtorBalance           decimal.Decimal `json:"debtor_balance"`
	TotalCost               decimal.Decimal `json:"total_cost"`
	TotalHours              decimal.Decimal `json:"total_hours"`
	TaskCount               int             `json:"task_count"`
	LastUpdated             time.Time       `json:"last_updated"`
}

// NewBalanceSnapshot returns an all-zero snapshot.
func NewBalanceSnapshot() *BalanceSnapshot {
	return &BalanceSnapshot{
		Time:                    decimal.Zero,
		TimeAdjustments:         decimal.Zero,
		Disbursements:           decimal.Zero,
		DisbursementAdjustments: decimal.Zero,
		Fees:                    decimal.Zero,
		Provision:               decimal.Zero,
		GrossWip:                decimal.Zero,
		NetWip:                  decimal.Zero,
		DebtorBalance:           decimal.Zero,
		TotalCost:               decimal.Zero,
		TotalHours:              decimal.Zero,
	}
}

// Derive recomputes GrossWip and NetWip from the category totals.
func (s *BalanceSnapshot) Derive() {
	s.GrossWip = s.Time.
		Add(s.TimeAdjustments).
		Add(s.Disbursements).
		Add(s.DisbursementAdjustments).
		Sub(s.Fees)
	s.NetWip = s.GrossWip.Add(s.Provision)
}

// Validate checks the snapshot arithmetic invariants.
func (s *BalanceSnapshot) Validate() error {
	gross := s.Time.
		Add(s.TimeAdjustments).
		Add(s.Disbursements).
		Add(s.DisbursementAdjustments).
		Sub(s.Fees)
	if !s.GrossWip.Equal(gross) {
		return ErrSnapshotInvariant
	}
	if !s.NetWip.Equal(gross.Add(s.Provision)) {
		return ErrSnapshotInvariant
	}
	return nil
}

// Profitability holds the metrics derived from a snapshot. Margin
// percentages are zero when their denominator is zero.
type Profitability struct {
	GrossProduction decimal.Decimal `json:"gross_production"`
	NetRevenue      decimal.Decimal `json:"net_revenue"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	GrossMarginPct  decimal.Decimal `json:"gross_margin_pct"`
	RecoveryPct     decimal.Decimal `json:"recovery_pct"`
}

// SnapshotResult is what GetSnapshot returns and what gets cached: the
// overall snapshot, or one snapshot per group code for grouped dimensions.
type SnapshotResult struct {
	EntityKind EntityKind                  `json:"entity_kind"`
	EntityID   string                      `json:"entity_id"`
	Dimension  Dimension                   `json:"dimension"`
	Overall    *BalanceSnapshot            `json:"overall,omitempty"`
	Groups     map[string]*BalanceSnapshot `json:"groups,omitempty"`
	ComputedAt time.Time                   `json:"computed_at"`
}

// CacheHealth reports the state of the distributed cache tier.
type CacheHealth struct {
	Configured bool `json:"configured"`
	Connected  bool `json:"connected"`
}
