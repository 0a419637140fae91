package attendance

import "errors"

// Attendance domain errors
var (
	// ErrNoRecord means no punch rows exist at all for the employee and date.
	// A day with rows whose status is "not clocked" is not this error.
	ErrNoRecord = errors.New("no attendance record for the requested date")
)
