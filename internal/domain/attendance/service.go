package attendance

import (
	"context"
	"io"
	"time"
)

// AttendanceService defines business logic for attendance inquiries
type AttendanceService interface {
	// GetDailyRecord normalizes the punches of one day; ErrNoRecord when there are none
	GetDailyRecord(ctx context.Context, companyID, employeeID string, date time.Time) (AttendanceRecord, error)

	// GetMonthlyRecords normalizes every day of the month that has punch rows
	GetMonthlyRecords(ctx context.Context, companyID, employeeID string, month time.Time) (MonthlyRecordsResponse, error)

	// ExportMonthlyRecords writes the month as an XLSX workbook
	ExportMonthlyRecords(ctx context.Context, companyID, employeeID string, month time.Time, w io.Writer) error
}
