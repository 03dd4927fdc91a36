package usecase_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyworks/wipengine/internal/domain"
	"github.com/tallyworks/wipengine/internal/usecase"
	"github.com/tallyworks/wipengine/internal/usecase/mocks"
	"github.com/tallyworks/wipengine/tests/testutil"
)

func allCategoriesFixture() []domain.Transaction {
	return []domain.Transaction{
		testutil.Txn(domain.KindTime, "1000", testutil.WithCost("400"), testutil.WithHours("10")),
		testutil.Txn(domain.KindTimeAdjustment, "-100"),
		testutil.Txn(domain.KindDisbursement, "200"),
		testutil.Txn(domain.KindDisbAdjustment, "-20"),
		testutil.Txn(domain.KindFee, "30"),
		testutil.Txn(domain.KindProvision, "30"),
	}
}

func TestAggregationEngine_Reduce(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	s, err := engine.Reduce(allCategoriesFixture())
	require.NoError(t, err)

	assert.True(t, s.GrossWip.Equal(decimal.NewFromInt(1050)), "gross wip = %s", s.GrossWip)
	assert.True(t, s.NetWip.Equal(decimal.NewFromInt(1080)), "net wip = %s", s.NetWip)
	assert.True(t, s.TotalCost.Equal(decimal.NewFromInt(400)))
	assert.True(t, s.TotalHours.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 1, s.TaskCount)
	require.NoError(t, s.Validate())
}

func TestAggregationEngine_Reduce_OrderIndependent(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	txns := allCategoriesFixture()
	want, err := engine.Reduce(txns)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.Transaction, len(txns))
		copy(shuffled, txns)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := engine.Reduce(shuffled)
		require.NoError(t, err)
		assert.True(t, got.GrossWip.Equal(want.GrossWip))
		assert.True(t, got.NetWip.Equal(want.NetWip))
		assert.True(t, got.TotalCost.Equal(want.TotalCost))
		assert.Equal(t, want.TaskCount, got.TaskCount)
	}
}

func TestAggregationEngine_Reduce_EmptyInput(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	s, err := engine.Reduce(nil)
	require.NoError(t, err)

	assert.True(t, s.GrossWip.IsZero())
	assert.True(t, s.NetWip.IsZero())
	assert.Equal(t, 0, s.TaskCount)
	assert.True(t, s.LastUpdated.IsZero())
	require.NoError(t, s.Validate())
}

func TestAggregationEngine_Reduce_UnknownKind(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	txns := []domain.Transaction{
		testutil.Txn(domain.KindTime, "100"),
		testutil.Txn(domain.TransactionKind("WRITE_OFF"), "50"),
	}

	_, err := engine.Reduce(txns)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTransactionKind))
}

func TestAggregationEngine_Reduce_CostElision(t *testing.T) {
	policy := mocks.NewMockCostPolicy("PARTNER")
	engine := usecase.NewAggregationEngine(policy)

	txns := []domain.Transaction{
		testutil.Txn(domain.KindTime, "500", testutil.WithCost("100"), testutil.WithEmployee("PARTNER")),
		testutil.Txn(domain.KindTime, "500", testutil.WithCost("50"), testutil.WithEmployee("E200")),
	}

	s, err := engine.Reduce(txns)
	require.NoError(t, err)

	// Partner cost is elided, not the row itself.
	assert.True(t, s.TotalCost.Equal(decimal.NewFromInt(50)), "total cost = %s", s.TotalCost)
	assert.True(t, s.Time.Equal(decimal.NewFromInt(1000)))
}

func TestAggregationEngine_Reduce_DistinctTasks(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	txns := []domain.Transaction{
		testutil.Txn(domain.KindTime, "100", testutil.WithTask("task-1")),
		testutil.Txn(domain.KindTime, "100", testutil.WithTask("task-1")),
		testutil.Txn(domain.KindTime, "100", testutil.WithTask("task-2")),
	}

	s, err := engine.Reduce(txns)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TaskCount)
}

func TestAggregationEngine_Reduce_LastUpdated(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	newest := testutil.FixtureDate
	txns := []domain.Transaction{
		testutil.Txn(domain.KindTime, "100", testutil.WithOccurredAt(testutil.DaysBefore(10))),
		testutil.Txn(domain.KindTime, "100", testutil.WithOccurredAt(newest)),
		testutil.Txn(domain.KindTime, "100", testutil.WithOccurredAt(testutil.DaysBefore(3))),
	}

	s, err := engine.Reduce(txns)
	require.NoError(t, err)
	assert.True(t, s.LastUpdated.Equal(newest))
}

func TestAggregationEngine_ReduceGrouped(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	txns := []domain.Transaction{
		testutil.Txn(domain.KindTime, "100", testutil.WithServiceLine("AUDIT")),
		testutil.Txn(domain.KindTime, "200", testutil.WithServiceLine("AUDIT")),
		testutil.Txn(domain.KindTime, "400", testutil.WithServiceLine("TAX")),
		testutil.Txn(domain.KindTime, "50", testutil.WithServiceLine("")),
	}

	groups, err := engine.ReduceGrouped(txns, func(t domain.Transaction) string {
		return t.ServiceLineCode
	})
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.True(t, groups["AUDIT"].Time.Equal(decimal.NewFromInt(300)))
	assert.True(t, groups["TAX"].Time.Equal(decimal.NewFromInt(400)))
	assert.True(t, groups["unassigned"].Time.Equal(decimal.NewFromInt(50)))
}

func TestAggregationEngine_ReduceGrouped_MasterRollup(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)
	lines := mocks.NewMockServiceLineMap(map[string]string{
		"AUDIT_UK": "AUDIT",
		"AUDIT_US": "AUDIT",
	})

	txns := []domain.Transaction{
		testutil.Txn(domain.KindTime, "100", testutil.WithServiceLine("AUDIT_UK")),
		testutil.Txn(domain.KindTime, "200", testutil.WithServiceLine("AUDIT_US")),
		testutil.Txn(domain.KindTime, "400", testutil.WithServiceLine("TAX")),
	}

	groups, err := engine.ReduceGrouped(txns, func(t domain.Transaction) string {
		return lines.MasterCode(t.ServiceLineCode)
	})
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.True(t, groups["AUDIT"].Time.Equal(decimal.NewFromInt(300)))
	assert.True(t, groups["TAX"].Time.Equal(decimal.NewFromInt(400)))
}

func TestAggregationEngine_Profitability(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	s, err := engine.Reduce([]domain.Transaction{
		testutil.Txn(domain.KindTime, "1000", testutil.WithCost("400")),
		testutil.Txn(domain.KindTimeAdjustment, "-200"),
		testutil.Txn(domain.KindDisbursement, "200"),
	})
	require.NoError(t, err)

	p := engine.Profitability(s)

	assert.True(t, p.GrossProduction.Equal(decimal.NewFromInt(1200)))
	assert.True(t, p.NetRevenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, p.GrossProfit.Equal(decimal.NewFromInt(600)))
	assert.True(t, p.GrossMarginPct.Equal(decimal.NewFromInt(60)), "margin = %s", p.GrossMarginPct)
}

func TestAggregationEngine_Profitability_ZeroDenominators(t *testing.T) {
	engine := usecase.NewAggregationEngine(nil)

	s, err := engine.Reduce(nil)
	require.NoError(t, err)

	p := engine.Profitability(s)

	assert.True(t, p.GrossMarginPct.IsZero())
	assert.True(t, p.RecoveryPct.IsZero())
}
