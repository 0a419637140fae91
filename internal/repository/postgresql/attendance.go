package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const punchColumns = `
	SELECT employee_id, work_date, card_type, expected_time, actual_time, COALESCE(TRIM(anomaly_code), '')
	FROM attendance_punches
`

// GetPunchRows implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetPunchRows(ctx context.Context, companyID, employeeID string, workDate time.Time) ([]attendance.RawPunchRow, error) {
	q := GetQuerier(ctx, r.db)
	query := punchColumns + `
		WHERE company_id = $1 AND employee_id = $2 AND work_date = $3
		ORDER BY card_type
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch rows: %w", err)
	}
	return collectPunchRows(rows)
}

// GetPunchRowsInRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetPunchRowsInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.RawPunchRow, error) {
	q := GetQuerier(ctx, r.db)
	query := punchColumns + `
		WHERE company_id = $1 AND employee_id = $2 AND work_date BETWEEN $3 AND $4
		ORDER BY work_date, card_type
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch rows: %w", err)
	}
	return collectPunchRows(rows)
}

func collectPunchRows(rows pgx.Rows) ([]attendance.RawPunchRow, error) {
	defer rows.Close()

	var result []attendance.RawPunchRow
	for rows.Next() {
		var p attendance.RawPunchRow
		var cardType int16
		if err := rows.Scan(&p.EmployeeID, &p.WorkDate, &cardType, &p.ExpectedTime, &p.ActualTime, &p.AnomalyCode); err != nil {
			return nil, fmt.Errorf("failed to scan punch row: %w", err)
		}
		p.CardType = attendance.CardType(cardType)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch rows: %w", err)
	}
	return result, nil
}
