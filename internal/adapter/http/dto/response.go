package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyworks/wipengine/internal/domain"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SnapshotResponse represents one balance snapshot in API responses.
type SnapshotResponse struct {
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
	LastUpdated             *time.Time      `json:"last_updated,omitempty"`
}

// SnapshotFromDomain converts a domain snapshot to a response.
func SnapshotFromDomain(s *domain.BalanceSnapshot) *SnapshotResponse {
	resp := &SnapshotResponse{
		Time:                    s.Time,
		TimeAdjustments:         s.TimeAdjustments,
		Disbursements:           s.Disbursements,
		DisbursementAdjustments: s.DisbursementAdjustments,
		Fees:                    s.Fees,
		Provision:               s.Provision,
		GrossWip:                s.GrossWip,
		NetWip:                  s.NetWip,
		DebtorBalance:           s.DebtorBalance,
		TotalCost:               s.TotalCost,
		TotalHours:              s.TotalHours,
		TaskCount:               s.TaskCount,
	}
	if !s.LastUpdated.IsZero() {
		t := s.LastUpdated
		resp.LastUpdated = &t
	}
	return resp
}

// SnapshotResultResponse represents a snapshot along one dimension.
type SnapshotResultResponse struct {
	EntityKind string                       `json:"entity_kind"`
	EntityID   string                       `json:"entity_id"`
	Dimension  string                       `json:"dimension"`
	Overall    *SnapshotResponse            `json:"overall,omitempty"`
	Groups     map[string]*SnapshotResponse `json:"groups,omitempty"`
	ComputedAt time.Time                    `json:"computed_at"`
}

// SnapshotResultFromDomain converts a domain snapshot result to a response.
func SnapshotResultFromDomain(r *domain.SnapshotResult) *SnapshotResultResponse {
	resp := &SnapshotResultResponse{
		EntityKind: string(r.EntityKind),
		EntityID:   r.EntityID,
		Dimension:  string(r.Dimension),
		ComputedAt: r.ComputedAt,
	}
	if r.Overall != nil {
		resp.Overall = SnapshotFromDomain(r.Overall)
	}
	if len(r.Groups) > 0 {
		resp.Groups = make(map[string]*SnapshotResponse, len(r.Groups))
		for code, s := range r.Groups {
			resp.Groups[code] = SnapshotFromDomain(s)
		}
	}
	return resp
}

// ProfitabilityResponse represents derived profitability metrics.
type ProfitabilityResponse struct {
	GrossProduction decimal.Decimal `json:"gross_production"`
	NetRevenue      decimal.Decimal `json:"net_revenue"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	GrossMarginPct  decimal.Decimal `json:"gross_margin_pct"`
	RecoveryPct     decimal.Decimal `json:"recovery_pct"`
}

// ProfitabilityFromDomain converts domain profitability to a response.
func ProfitabilityFromDomain(p *domain.Profitability) *ProfitabilityResponse {
	return &ProfitabilityResponse{
		GrossProduction: p.GrossProduction,
		NetRevenue:      p.NetRevenue,
		GrossProfit:     p.GrossProfit,
		GrossMarginPct:  p.GrossMarginPct,
		RecoveryPct:     p.RecoveryPct,
	}
}

// AgingResponse represents debtor aging buckets.
type AgingResponse struct {
	AsOf        time.Time       `json:"as_of"`
	Current     decimal.Decimal `json:"current"`
	Days31To60  decimal.Decimal `json:"days_31_to_60"`
	Days61To90  decimal.Decimal `json:"days_61_to_90"`
	Over90      decimal.Decimal `json:"over_90"`
	Total       decimal.Decimal `json:"total"`
	FutureDated int             `json:"future_dated"`
}

// AgingFromDomain converts domain aging buckets to a response.
func AgingFromDomain(a *domain.AgingBuckets) *AgingResponse {
	return &AgingResponse{
		AsOf:        a.AsOf,
		Current:     a.Current,
		Days31To60:  a.Days31To60,
		Days61To90:  a.Days61To90,
		Over90:      a.Over90,
		Total:       a.Total,
		FutureDated: a.FutureDated,
	}
}

// InvalidateResponse reports how many entries an invalidation evicted.
type InvalidateResponse struct {
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
	Evicted    int    `json:"evicted"`
}

// CacheHealthResponse reports the distributed tier's state.
type CacheHealthResponse struct {
	Configured bool `json:"configured"`
	Connected  bool `json:"connected"`
}
