package salary

import "errors"

var (
	ErrSlipNotFound = errors.New("no salary slip for the requested pay period")
)
