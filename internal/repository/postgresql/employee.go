package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.company_id, c.name, e.employee_no, e.full_name, e.english_name,
		e.email, e.mobile, e.office_phone, e.extension, e.job_title, d.name,
		e.photo_path, e.hire_date, e.day_work_hours, e.employment_status
	FROM employees e
	JOIN companies c ON c.id = e.company_id
	LEFT JOIN departments d ON d.id = e.department_id
`

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := employeeSelect + ` WHERE e.company_id = $1 AND e.id = $2 AND e.deleted_at IS NULL`
	return scanEmployee(q.QueryRow(ctx, query, companyID, id))
}

// GetByEmployeeNo implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeNo(ctx context.Context, companyID, employeeNo string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := employeeSelect + ` WHERE e.company_id = $1 AND e.employee_no = $2 AND e.deleted_at IS NULL`
	return scanEmployee(q.QueryRow(ctx, query, companyID, employeeNo))
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.CompanyName, &emp.EmployeeNo, &emp.FullName, &emp.EnglishName,
		&emp.Email, &emp.Mobile, &emp.OfficePhone, &emp.Extension, &emp.JobTitle, &emp.DepartmentName,
		&emp.PhotoPath, &emp.HireDate, &emp.DayWorkHours, &emp.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}
	return emp, nil
}
