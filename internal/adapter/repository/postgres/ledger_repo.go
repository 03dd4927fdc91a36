package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/wipengine/internal/domain"
	"github.com/tallyworks/wipengine/internal/usecase"
)

// LedgerRepository implements usecase.LedgerReader against the application's
// transaction table. The engine only reads; writes belong to the rest of
// the application.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool, retrier *Retrier) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		retrier: retrier,
	}
}

// FetchTransactions reads all transaction rows for an entity, optionally
// narrowed by the filter. Failures wrap domain.ErrLedgerUnavailable since no
// valid snapshot can be produced without the ledger.
func (r *LedgerRepository) FetchTransactions(ctx context.Context, kind domain.EntityKind, id string, filter usecase.LedgerFilter) ([]domain.Transaction, error) {
	query, args, err := buildFetchQuery(kind, id, filter)
	if err != nil {
		return nil, err
	}

	var txns []domain.Transaction
	err = r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		txns = txns[:0]
		for rows.Next() {
			var (
				t          domain.Transaction
				amount     pgtype.Numeric
				cost       pgtype.Numeric
				hours      pgtype.Numeric
				occurredAt pgtype.Timestamptz
				txKind     string
			)
			if err := rows.Scan(
				&t.TaskID, &t.ClientID, &t.ServiceLineCode, &txKind,
				&amount, &cost, &hours, &t.EmployeeCode, &occurredAt,
			); err != nil {
				return err
			}
			t.Kind = domain.TransactionKind(txKind)
			t.Amount = numericToDecimal(amount)
			t.Cost = numericToDecimal(cost)
			t.Hours = numericToDecimal(hours)
			t.OccurredAt = occurredAt.Time
			txns = append(txns, t)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}

	return txns, nil
}

func buildFetchQuery(kind domain.EntityKind, id string, filter usecase.LedgerFilter) (string, []any, error) {
	var b strings.Builder
	b.WriteString(`SELECT task_id, client_id, service_line_code, kind,
		amount, cost, hours, employee_code, occurred_at
		FROM wip_transactions`)

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	switch kind {
	case domain.EntityTask:
		conds = append(conds, "task_id = "+arg(id))
	case domain.EntityClient:
		conds = append(conds, "client_id = "+arg(id))
	case domain.EntityFirm:
		// Firm-wide reads span the whole table.
	default:
		return "", nil, domain.ErrUnknownEntityKind
	}

	if !filter.From.IsZero() {
		conds = append(conds, "occurred_at >= "+arg(filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "occurred_at <= "+arg(filter.To))
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		conds = append(conds, "kind = ANY("+arg(kinds)+")")
	}

	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	return b.String(), args, nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
