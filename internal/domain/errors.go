package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when no authenticated session is present
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAccountNotReady is returned when the delegated execution address is
	// not yet initialized or not accepted for sponsorship
	ErrAccountNotReady = errors.New("delegated account not ready for sponsored execution")

	// ErrLedgerUnavailable is returned on transient ledger transport failure
	// with no previously cached value to fall back on
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrIdentifierNotFound is returned when a derived or looked-up ledger
	// identifier resolves to nothing (e.g. the zero submission id)
	ErrIdentifierNotFound = errors.New("ledger identifier not found")

	// ErrActionInFlight is returned when a sponsored call for the same
	// (actor, entity) pair is already in flight
	ErrActionInFlight = errors.New("action already in flight for this actor and entity")

	// ErrTransactionRejected is returned when the relayer or the ledger
	// declines a sponsored call; never retried automatically
	ErrTransactionRejected = errors.New("transaction rejected")

	// ErrReconciliationTimeout is recorded when the ledger-assigned id was
	// not visible within the grace interval; the row stays pending
	ErrReconciliationTimeout = errors.New("reconciliation timed out, row left pending")

	// ErrDatabaseSyncFailure marks a database write that lagged behind a
	// ledger write that already succeeded; repaired by a later attempt
	ErrDatabaseSyncFailure = errors.New("database sync failed, ledger state is ahead")
)
