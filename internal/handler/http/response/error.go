package response

import (
	"errors"
	"net/http"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/employee"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/payroll"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/yukyu"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Workplace config errors
	case errors.Is(err, workplace.ErrConfigNotFound):
		NotFound(w, "Config version not found")
	case errors.Is(err, workplace.ErrNoEffectiveConfig):
		NotFound(w, "No config version effective on this date")
	case errors.Is(err, workplace.ErrVersionExists):
		Conflict(w, "Config version already exists")
	case errors.Is(err, workplace.ErrInvalidConfig):
		BadRequest(w, "Invalid workplace config", nil)

	// Attendance errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordSuperseded):
		Conflict(w, "Attendance record already corrected")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrInvalidRecord):
		BadRequest(w, err.Error(), nil)

	// Employee wage errors
	case errors.Is(err, employee.ErrWageNotFound):
		NotFound(w, "No wage record effective for this employee")

	// Payroll run errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists):
		Conflict(w, "A payroll run already exists for this period")
	case errors.Is(err, payroll.ErrConcurrentModification):
		Conflict(w, "Payroll run was modified concurrently, reload and retry")
	case errors.Is(err, payroll.ErrUnresolvedWarnings):
		Conflict(w, "Outstanding warnings require an explicit override")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Invalid payroll run state transition")
	case errors.Is(err, payroll.ErrRunImmutable):
		Conflict(w, "Payroll run is no longer recomputable")

	// Yukyu ledger errors
	case errors.Is(err, yukyu.ErrInsufficientBalance):
		Conflict(w, "Insufficient paid-leave balance")
	case errors.Is(err, yukyu.ErrGrantNotFound):
		NotFound(w, "Grant not found")
	case errors.Is(err, yukyu.ErrConsumptionNotFound):
		NotFound(w, "Consumption not found")
	case errors.Is(err, yukyu.ErrAlreadyReversed):
		Conflict(w, "Consumption already reversed")
	case errors.Is(err, yukyu.ErrInvalidGrant), errors.Is(err, yukyu.ErrInvalidConsumption):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
