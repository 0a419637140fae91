package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
}

// GetDailyRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailyRecord(ctx context.Context, companyID, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	rows, err := s.AttendanceRepository.GetPunchRows(ctx, companyID, employeeID, date)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get punch rows: %w", err)
	}

	return Normalize(rows, date)
}

// GetMonthlyRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthlyRecords(ctx context.Context, companyID, employeeID string, month time.Time) (attendance.MonthlyRecordsResponse, error) {
	from, to := monthBounds(month)

	rows, err := s.AttendanceRepository.GetPunchRowsInRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		return attendance.MonthlyRecordsResponse{}, fmt.Errorf("failed to get punch rows for month: %w", err)
	}

	days, byDay := GroupByWorkDate(rows)
	records := make([]attendance.AttendanceRecord, 0, len(days))
	for _, day := range days {
		record, err := Normalize(byDay[day.Format("2006-01-02")], day)
		if err != nil {
			return attendance.MonthlyRecordsResponse{}, err
		}
		records = append(records, record)
	}

	return attendance.MonthlyRecordsResponse{
		Month:   from.Format("2006-01"),
		Records: records,
	}, nil
}

// ExportMonthlyRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportMonthlyRecords(ctx context.Context, companyID, employeeID string, month time.Time, w io.Writer) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	monthly, err := s.GetMonthlyRecords(ctx, companyID, employeeID, month)
	if err != nil {
		return err
	}

	if err := WriteWorkbook(w, emp, monthly); err != nil {
		return fmt.Errorf("failed to write attendance workbook: %w", err)
	}

	slog.Info("Exported attendance workbook", "company_id", companyID, "employee_id", employeeID, "month", monthly.Month, "days", len(monthly.Records))
	return nil
}

// monthBounds returns the first and last calendar day of month.
func monthBounds(month time.Time) (time.Time, time.Time) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return from, from.AddDate(0, 1, -1)
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
	}
}
