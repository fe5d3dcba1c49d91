package corepool

import "errors"

// Stable error kinds. Every mutating operation is all-or-nothing: on any
// of these, the whole call aborts, no event is returned, and no tokens
// change custody. Callers compare with errors.Is; call sites wrap the
// sentinel with github.com/pkg/errors to attach identifying context
// (pool id, program id, user) without losing comparability.
var (
	ErrTokenTypeMismatch         = errors.New("corepool: token type mismatch")
	ErrUserShareNotFound         = errors.New("corepool: user share ledger not found")
	ErrSharesNotYetExpired       = errors.New("corepool: shares not yet past unlock countdown")
	ErrUserMismatch              = errors.New("corepool: ledger user does not match caller")
	ErrActiveSharesNotEnough     = errors.New("corepool: active shares not enough")
	ErrZeroUnlockCountdown       = errors.New("corepool: unlock countdown must be positive")
	ErrAlreadyDeactivated        = errors.New("corepool: incentive program already deactivated")
	ErrAlreadyActivated          = errors.New("corepool: incentive program already activated")
	ErrZeroIncentive             = errors.New("corepool: incentive program requires a non-zero initial balance")
	ErrZeroPeriodIncentiveAmount = errors.New("corepool: period incentive amount must be positive")
	ErrZeroCoin                  = errors.New("corepool: stake amount must be positive")
	ErrArithmeticOverflow        = errors.New("corepool: arithmetic overflow in fixed-point index math")

	ErrPoolNotFound           = errors.New("corepool: pool not found")
	ErrProgramIndexOutOfRange = errors.New("corepool: program index out of range")
	ErrCapabilityMismatch     = errors.New("corepool: admin capability does not authorize this pool")
	ErrZeroIntervalUpdate     = errors.New("corepool: interval_ms must be positive")
)
