package contract

import (
	"errors"
	"fmt"
)

// Error is a rejection kind. Codes follow the families of the deployed contract:
// 1xxx auth and setup, 5xxx amounts, 7xxx sale lifecycle, 8xxx caps and whitelist.
type Error struct {
	Code int
	Kind string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (u%d)", e.Kind, e.Code)
}

var (
	ErrNotAuthorized       = &Error{1000, "not-authorized"}
	ErrInvalidToken        = &Error{1001, "invalid-token"}
	ErrAlreadyInitialized  = &Error{1002, "already-initialized"}
	ErrInvalidConfig       = &Error{1003, "invalid-config"}
	ErrNotInitialized      = &Error{1004, "not-initialized"}
	ErrInvalidAddress      = &Error{1005, "invalid-address"}
	ErrEmptyWhitelistBatch = &Error{1006, "empty-whitelist-batch"}
	ErrWhitelistBatchLimit = &Error{1007, "whitelist-batch-too-large"}

	ErrAmountTooSmall = &Error{5001, "amount-too-small"}

	ErrSaleNotActive              = &Error{7000, "sale-not-active"}
	ErrSaleEnded                  = &Error{7001, "sale-ended"}
	ErrSaleNotEligibleForFinalize = &Error{7002, "sale-not-eligible-for-finalize"}
	ErrDistributionNotStarted     = &Error{7003, "distribution-not-started"}
	ErrNotParticipant             = &Error{7004, "not-participant"}
	ErrFailureBranchOnly          = &Error{7005, "failure-branch-only"}
	ErrNothingToClaim             = &Error{7006, "nothing-to-claim"}
	ErrAlreadyFinalized           = &Error{7007, "already-finalized"}
	ErrNothingToRefund            = &Error{7008, "nothing-to-refund"}
	ErrNothingToWithdraw          = &Error{7009, "nothing-to-withdraw"}

	ErrPerUserCapExceeded = &Error{8001, "per-user-cap-exceeded"}
	ErrHardcapExceeded    = &Error{8002, "hardcap-exceeded"}
	ErrNotWhitelisted     = &Error{8005, "not-whitelisted"}
)

// reject wraps a kind with call specific detail; errors.Is still matches the kind.
func reject(kind *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// CodeOf extracts the numeric code of a rejection, 0 for host failures.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// KindOf returns the kebab-case kind, or "internal" for anything that is not a rejection.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return "internal"
}
