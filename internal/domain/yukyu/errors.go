package yukyu

import "errors"

var (
	// ErrInsufficientBalance fails a consumption request when non-expired
	// remaining days across all grants are less than requested. The ledger
	// is left unmodified.
	ErrInsufficientBalance = errors.New("insufficient paid-leave balance")

	ErrGrantNotFound       = errors.New("paid-leave grant not found")
	ErrConsumptionNotFound = errors.New("paid-leave consumption not found")
	ErrInvalidGrant        = errors.New("paid-leave grant is malformed")
	ErrInvalidConsumption  = errors.New("paid-leave consumption is malformed")
	ErrAlreadyReversed     = errors.New("paid-leave consumption already reversed")
)
