package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads raw punch-clock rows from the HR database.
// All methods include companyID; employee ids are only unique per company.
type AttendanceRepository interface {
	// GetPunchRows returns the punch rows of one employee on one work date
	GetPunchRows(ctx context.Context, companyID, employeeID string, workDate time.Time) ([]RawPunchRow, error)

	// GetPunchRowsInRange returns punch rows for work dates in [from, to], ordered by work date
	GetPunchRowsInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]RawPunchRow, error)
}
