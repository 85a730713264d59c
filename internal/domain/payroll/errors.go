package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrRunNotFound       = errors.New("payroll run not found")
	ErrRunAlreadyExists  = errors.New("payroll run already exists for this period")
	ErrInvalidTransition = errors.New("invalid payroll run state transition")

	// ErrConcurrentModification signals an optimistic-lock conflict: the run
	// version changed between read and commit. Retryable by the caller.
	ErrConcurrentModification = errors.New("payroll run was modified concurrently")

	ErrRunImmutable = errors.New("payroll run is no longer recomputable")
)

// ErrUnresolvedWarnings refines ErrInvalidTransition: approval was attempted
// while blocking warnings are outstanding and no override was given.
// errors.Is(err, ErrInvalidTransition) holds for it.
var ErrUnresolvedWarnings = fmt.Errorf("%w: outstanding warnings require an explicit override", ErrInvalidTransition)
