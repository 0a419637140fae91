package leave

import "errors"

// Leave domain errors
var (
	ErrHireDateNotFound    = errors.New("no hire date on record for employee")
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrInsufficientBalance = errors.New("requested leave exceeds remaining balance")
	ErrInvalidWorkHours    = errors.New("day work hours must be positive")
)
