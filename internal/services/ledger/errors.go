package ledger

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrAccountNotFound     = errors.New("gcash account not found or inactive")
	ErrMissingGcashAccount = errors.New("gcash account is required for gcash adjustments")
	ErrInvalidTarget       = errors.New("adjustment target must be cash or gcash")
	ErrInvalidDirection    = errors.New("adjustment direction must be add or deduct")
	ErrOperationFailed     = errors.New("ledger operation failed")

	// Balances may go negative today; declared for callers that want to
	// enforce the stricter invariant later.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
