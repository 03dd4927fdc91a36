package domain

import "errors"

var (
	// Aggregation errors
	ErrUnknownTransactionKind = errors.New("transaction kind does not map to a snapshot category")
	ErrSnapshotInvariant      = errors.New("snapshot arithmetic invariant violated")
	ErrNotDebtorRow           = errors.New("aging input contains a non-debtor row")
	ErrAgingTotalMismatch     = errors.New("aging bucket sum does not equal total")

	// Request errors
	ErrUnknownEntityKind = errors.New("unknown entity kind")
	ErrUnknownDimension  = errors.New("unknown dimension")

	// Collaborator errors
	ErrLedgerUnavailable = errors.New("ledger source unavailable")
)
