package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeSelect = `
	SELECT id, company_id, code, name, leave_class, unit_type, min_unit, sort_order, is_active
	FROM leave_types
`

// ListActive implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListActive(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := leaveTypeSelect + ` WHERE company_id = $1 AND is_active = TRUE ORDER BY sort_order, code`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave types: %w", err)
	}
	return types, nil
}

// GetByCode implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByCode(ctx context.Context, companyID, code string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := leaveTypeSelect + ` WHERE company_id = $1 AND code = $2`

	lt, err := scanLeaveType(q.QueryRow(ctx, query, companyID, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, err
}

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(&lt.ID, &lt.CompanyID, &lt.Code, &lt.Name, &lt.Class, &lt.UnitType, &lt.MinUnit, &lt.SortOrder, &lt.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, err
		}
		return leave.LeaveType{}, fmt.Errorf("failed to scan leave type: %w", err)
	}
	return lt, nil
}

type leaveLedgerRepositoryImpl struct {
	db *database.DB
}

func NewLeaveLedgerRepository(db *database.DB) leave.LeaveLedgerRepository {
	return &leaveLedgerRepositoryImpl{db: db}
}

// GetGrants implements leave.LeaveLedgerRepository.
func (r *leaveLedgerRepositoryImpl) GetGrants(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveGrantRow, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT g.employee_id, g.id, lt.code, lt.name, lt.leave_class, lt.unit_type, lt.min_unit,
			g.grant_value, g.effective_date
		FROM leave_grants g
		JOIN leave_types lt ON lt.id = g.leave_type_id
		WHERE g.company_id = $1 AND g.employee_id = $2 AND g.effective_date BETWEEN $3 AND $4
		ORDER BY lt.code, g.effective_date
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave grants: %w", err)
	}
	defer rows.Close()

	var grants []leave.LeaveGrantRow
	for rows.Next() {
		var g leave.LeaveGrantRow
		if err := rows.Scan(
			&g.EmployeeID, &g.LeaveRefID, &g.LeaveCode, &g.LeaveName, &g.LeaveClass, &g.UnitType, &g.MinUnit,
			&g.GrantValue, &g.EffectiveDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave grants: %w", err)
	}
	return grants, nil
}

// GetUsages implements leave.LeaveLedgerRepository. The upper bound is
// exclusive on the following day so usages starting late on the last day count.
func (r *leaveLedgerRepositoryImpl) GetUsages(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveUsageRow, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT u.employee_id, lt.code, u.start_time, u.end_time, u.ask_leave_hours,
			COALESCE(u.cancel_hours, 0), u.is_counted
		FROM leave_usages u
		JOIN leave_types lt ON lt.id = u.leave_type_id
		WHERE u.company_id = $1 AND u.employee_id = $2 AND u.start_time >= $3 AND u.start_time < $4
		ORDER BY u.start_time
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to query leave usages: %w", err)
	}
	defer rows.Close()

	var usages []leave.LeaveUsageRow
	for rows.Next() {
		var u leave.LeaveUsageRow
		if err := rows.Scan(&u.EmployeeID, &u.LeaveCode, &u.StartTime, &u.EndTime, &u.AskLeaveHours, &u.CancelHours, &u.IsCounted); err != nil {
			return nil, fmt.Errorf("failed to scan leave usage: %w", err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave usages: %w", err)
	}
	return usages, nil
}
