package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

type LeaveService interface {
	// GetBalances returns the summary balance per leave type for an anniversary year
	GetBalances(ctx context.Context, companyID, employeeID string, year int) (BalancesResponse, error)

	// GetBalanceDetail returns the detailed balances for an anniversary year
	GetBalanceDetail(ctx context.Context, companyID, employeeID string, year int) (BalanceDetailResponse, error)

	// ListLeaveTypes returns the leave types an employee can request
	ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveType, error)
}

// BalanceChecker guards leave requests against the current window's balance.
type BalanceChecker interface {
	CheckBalance(ctx context.Context, companyID, employeeID, leaveCode string, hours decimal.Decimal) error
}
