package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallyworks/wipengine/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// AggregationEngine reduces a transaction set into a balance snapshot. The
// fold is commutative and associative per category, so the result does not
// depend on row order.
type AggregationEngine struct {
	costPolicy CostPolicy
}

// NewAggregationEngine creates a new AggregationEngine. costPolicy may be
// nil, in which case no cost is elided.
func NewAggregationEngine(costPolicy CostPolicy) *AggregationEngine {
	return &AggregationEngine{costPolicy: costPolicy}
}

// Reduce folds transactions into a single snapshot. Empty input yields an
// all-zero snapshot. An unknown kind fails the whole computation: silently
// dropping money-bearing rows is worse than failing.
func (e *AggregationEngine) Reduce(txns []domain.Transaction) (*domain.BalanceSnapshot, error) {
	s := domain.NewBalanceSnapshot()
	tasks := make(map[string]struct{})

	for i := range txns {
		t := &txns[i]

		switch t.Kind {
		case domain.KindTime:
			s.Time = s.Time.Add(t.Amount)
		case domain.KindTimeAdjustment:
			s.TimeAdjustments = s.TimeAdjustments.Add(t.Amount)
		case domain.KindDisbursement:
			s.Disbursements = s.Disbursements.Add(t.Amount)
		case domain.KindDisbAdjustment:
			s.DisbursementAdjustments = s.DisbursementAdjustments.Add(t.Amount)
		case domain.KindFee:
			s.Fees = s.Fees.Add(t.Amount)
		case domain.KindProvision:
			s.Provision = s.Provision.Add(t.Amount)
		case domain.KindDebtor:
			s.DebtorBalance = s.DebtorBalance.Add(t.Amount)
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTransactionKind, t.Kind)
		}

		if !e.elideCost(t.EmployeeCode) {
			s.TotalCost = s.TotalCost.Add(t.Cost)
		}
		s.TotalHours = s.TotalHours.Add(t.Hours)

		if t.TaskID != "" {
			tasks[t.TaskID] = struct{}{}
		}
		if t.OccurredAt.After(s.LastUpdated) {
			s.LastUpdated = t.OccurredAt
		}
	}

	s.TaskCount = len(tasks)
	s.Derive()

	return s, nil
}

// ReduceGrouped buckets transactions by groupFn, reducing each bucket with
// the same fold as Reduce. Rows whose group code is empty land under the
// "unassigned" group rather than being dropped.
func (e *AggregationEngine) ReduceGrouped(txns []domain.Transaction, groupFn func(domain.Transaction) string) (map[string]*domain.BalanceSnapshot, error) {
	buckets := make(map[string][]domain.Transaction)
	for _, t := range txns {
		code := groupFn(t)
		if code == "" {
			code = "unassigned"
		}
		buckets[code] = append(buckets[code], t)
	}

	groups := make(map[string]*domain.BalanceSnapshot, len(buckets))
	for code, rows := range buckets {
		s, err := e.Reduce(rows)
		if err != nil {
			return nil, err
		}
		groups[code] = s
	}

	return groups, nil
}

// Profitability derives production, revenue and margin metrics from a
// snapshot. Percentages guard against zero denominators.
func (e *AggregationEngine) Profitability(s *domain.BalanceSnapshot) domain.Profitability {
	grossProduction := s.Time.Add(s.Disbursements)
	netRevenue := grossProduction.Add(s.TimeAdjustments).Add(s.DisbursementAdjustments)
	grossProfit := netRevenue.Sub(s.TotalCost)

	p := domain.Profitability{
		GrossProduction: grossProduction,
		NetRevenue:      netRevenue,
		GrossProfit:     grossProfit,
		GrossMarginPct:  decimal.Zero,
		RecoveryPct:     decimal.Zero,
	}
	if !netRevenue.IsZero() {
		p.GrossMarginPct = grossProfit.Div(netRevenue).Mul(oneHundred)
	}
	if !grossProduction.IsZero() {
		p.RecoveryPct = netRevenue.Div(grossProduction).Mul(oneHundred)
	}

	return p
}

func (e *AggregationEngine) elideCost(employeeCode string) bool {
	return e.costPolicy != nil && e.costPolicy.IsZeroCost(employeeCode)
}
