package form

import "errors"

// Form domain errors
var (
	ErrFormNotFound        = errors.New("form not found")
	ErrFormNotPending      = errors.New("form is no longer pending")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrInvalidHours        = errors.New("hours must be greater than zero")
	ErrTaskNotFound        = errors.New("task not found or not assigned to you")
	ErrWorkflowRejected    = errors.New("workflow service rejected the request")
	ErrWorkflowUnavailable = errors.New("workflow service is unavailable")
	ErrInvalidCallback     = errors.New("invalid workflow callback")
)
