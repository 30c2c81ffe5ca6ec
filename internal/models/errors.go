package models

import "errors"

// Contract error taxonomy. Every operation returns exactly one of these
// (possibly wrapped with context); callers match with errors.Is.
var (
	ErrUnauthorized              = errors.New("caller is not the contract owner")
	ErrAlreadyInitialized        = errors.New("contract already initialized")
	ErrNotInitialized            = errors.New("contract not initialized")
	ErrMigrationAlreadyPerformed = errors.New("balance migration already performed")
	ErrNotMigrated               = errors.New("balance migration not performed yet")
	ErrInvalidTimestamp          = errors.New("invalid timestamp")
	ErrEndBeforeStart            = errors.New("end time must be later than start time")
	ErrUnknownWallet             = errors.New("unknown wallet name")
	ErrDuplicatedWalletName      = errors.New("wallet name must be unique")
	ErrMismatchedAccountInfo     = errors.New("migration entry does not match a known account")
	ErrPooledBalanceNotZero      = errors.New("pooled account balance is not zero after distribution")
	ErrWalletBalanceZero         = errors.New("wallet balance is zero after migration")
	ErrTooLateToBurn             = errors.New("tokens can be burned only between the 1st and the 5th day of the month")
	ErrAlreadyBurned             = errors.New("tokens already burned this month")
	ErrNotEnoughTokens           = errors.New("not enough tokens to withdraw")
	ErrAmountOverflow            = errors.New("amount arithmetic overflow")
	// ErrWithdrawnExceedsUnlocked means the withdrawn counter is ahead of the
	// unlock ceiling. That state is unreachable through the public operations,
	// so hitting it indicates corrupted persisted state.
	ErrWithdrawnExceedsUnlocked = errors.New("withdrawn amount exceeds unlocked amount")
)
