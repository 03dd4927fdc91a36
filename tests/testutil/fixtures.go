// Package testutil provides fixture builders shared across test packages.
package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyworks/wipengine/internal/domain"
)

// FixtureDate is the reference date fixtures hang off. Tests that care
// about aging compute offsets from it.
var FixtureDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

// TxnOption mutates a fixture transaction.
type TxnOption func(*domain.Transaction)

// Txn builds a transaction of the given kind and amount with sane defaults.
func Txn(kind domain.TransactionKind, amount string, opts ...TxnOption) domain.Transaction {
	txn := domain.Transaction{
		OccurredAt:      FixtureDate,
		TaskID:          "task-1",
		ClientID:        "client-1",
		ServiceLineCode: "AUDIT",
		EmployeeCode:    "E100",
		Kind:            kind,
		Amount:          decimal.RequireFromString(amount),
		Cost:            decimal.Zero,
		Hours:           decimal.Zero,
	}
	for _, opt := range opts {
		opt(&txn)
	}
	return txn
}

// WithCost sets the transaction cost.
func WithCost(cost string) TxnOption {
	return func(txn *domain.Transaction) {
		txn.Cost = decimal.RequireFromString(cost)
	}
}

// WithHours sets the transaction hours.
func WithHours(hours string) TxnOption {
	return func(txn *domain.Transaction) {
		txn.Hours = decimal.RequireFromString(hours)
	}
}

// WithEmployee sets the employee code.
func WithEmployee(code string) TxnOption {
	return func(txn *domain.Transaction) {
		txn.EmployeeCode = code
	}
}

// WithServiceLine sets the service line code.
func WithServiceLine(code string) TxnOption {
	return func(txn *domain.Transaction) {
		txn.ServiceLineCode = code
	}
}

// WithTask sets the task ID.
func WithTask(id string) TxnOption {
	return func(txn *domain.Transaction) {
		txn.TaskID = id
	}
}

// WithOccurredAt sets the transaction date.
func WithOccurredAt(at time.Time) TxnOption {
	return func(txn *domain.Transaction) {
		txn.OccurredAt = at
	}
}

// DaysBefore returns FixtureDate shifted back by n days.
func DaysBefore(n int) time.Time {
	return FixtureDate.AddDate(0, 0, -n)
}

// DebtorRow builds a DEBTOR transaction dated n days before FixtureDate.
func DebtorRow(amount string, daysOld int) domain.Transaction {
	return Txn(domain.KindDebtor, amount, WithOccurredAt(DaysBefore(daysOld)))
}
