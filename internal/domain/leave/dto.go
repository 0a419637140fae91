package leave

import (
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
)

// ========================================
// LEAVE BALANCE DTOs
// ========================================

// BalancesRequest asks for balances of an anniversary year; Year 0 means the current one.
type BalancesRequest struct {
	auth.Credentials
	Year int `json:"year" validate:"omitempty,gte=1900,lte=9999"`
}

func (r *BalancesRequest) Validate() error {
	return validator.Struct(r)
}

type WindowResponse struct {
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type BalancesResponse struct {
	WindowResponse
	Balances []LeaveBalanceSummary `json:"balances"`
}

type BalanceDetailResponse struct {
	WindowResponse
	DayWorkHours string             `json:"day_work_hours"`
	Balances     []LeaveTypeBalance `json:"balances"`
}

type LeaveTypesRequest struct {
	auth.Credentials
}

func (r *LeaveTypesRequest) Validate() error {
	return nil
}
