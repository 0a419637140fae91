package response

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attachment"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/salary"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// Unparseable dates are a malformed request, not a rule violation
		if validationErrs.HasFormatError() {
			BadRequest(w, "Validation failed", validationErrs.ToMap())
			return
		}
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrMissingCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenMismatch),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrCodeNotFound),
		errors.Is(err, auth.ErrInvalidCode):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTooManyAttempts),
		errors.Is(err, auth.ErrCodeCooldown):
		TooManyRequests(w, err.Error())
	case errors.Is(err, auth.ErrNoEmailOnRecord):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, auth.ErrEmployeeNotActive):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoRecord):
		NotFound(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrHireDateNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, leave.ErrInvalidWorkHours):
		InternalServerError(w, "Employee work hours are misconfigured")

	// Form domain errors
	case errors.Is(err, form.ErrFormNotFound):
		NotFound(w, "Form not found")
	case errors.Is(err, form.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, form.ErrFormNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, form.ErrInvalidTimeRange),
		errors.Is(err, form.ErrInvalidHours),
		errors.Is(err, form.ErrInvalidCallback):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, form.ErrWorkflowRejected):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, form.ErrWorkflowUnavailable):
		BadGateway(w, "Workflow service is temporarily unavailable")

	// Salary domain errors
	case errors.Is(err, salary.ErrSlipNotFound):
		NotFound(w, "Salary slip not found")

	// Attachment domain errors
	case errors.Is(err, attachment.ErrFileTooLarge),
		errors.Is(err, attachment.ErrFileTypeNotAllowed),
		errors.Is(err, attachment.ErrFileRequired),
		errors.Is(err, attachment.ErrInvalidImage):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err, "stack", string(debug.Stack()))
		InternalServerError(w, "An unexpected error occurred")
	}
}
