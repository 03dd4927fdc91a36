package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger row into exactly one snapshot category.
type TransactionKind string

const (
	KindTime           TransactionKind = "TIME"
	KindTimeAdjustment TransactionKind = "TIME_ADJUSTMENT"
	KindDisbursement   TransactionKind = "DISBURSEMENT"
	KindDisbAdjustment TransactionKind = "DISB_ADJUSTMENT"
	KindFee            TransactionKind = "FEE"
	KindProvision      TransactionKind = "PROVISION"
	KindDebtor         TransactionKind = "DEBTOR"
)

// Valid reports whether the kind maps to a known snapshot category.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindTime, KindTimeAdjustment, KindDisbursement, KindDisbAdjustment,
		KindFee, KindProvision, KindDebtor:
		return true
	}
	return false
}

// EntityKind identifies the scope a snapshot is aggregated over.
type EntityKind string

const (
	EntityTask   EntityKind = "task"
	EntityClient EntityKind = "client"
	EntityFirm   EntityKind = "firm"
)

// ParseEntityKind validates and normalises an entity kind string.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case EntityTask:
		return EntityTask, nil
	case EntityClient:
		return EntityClient, nil
	case EntityFirm:
		return EntityFirm, nil
	}
	return "", ErrUnknownEntityKind
}

// Transaction is a single immutable ledger row. The engine only ever reads
// these; the ledger store owns them.
type Transaction struct {
	OccurredAt      time.Time
	TaskID          string
	ClientID        string
	ServiceLineCode string
	EmployeeCode    string
	Kind            TransactionKind
	Amount          decimal.Decimal
	Cost            decimal.Decimal
	Hours           decimal.Decimal
}
