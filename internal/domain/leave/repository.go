package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	// ListActive returns the company's active leave types ordered by sort order
	ListActive(ctx context.Context, companyID string) ([]LeaveType, error)

	GetByCode(ctx context.Context, companyID, code string) (LeaveType, error)
}

// LeaveLedgerRepository reads grant and usage rows. Rows are filtered to
// [from, to] by effective date (grants) or start date (usages).
type LeaveLedgerRepository interface {
	GetGrants(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]LeaveGrantRow, error)
	GetUsages(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]LeaveUsageRow, error)
}
