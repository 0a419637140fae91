package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/salary"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/database"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

// GetItems implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetItems(ctx context.Context, companyID, employeeID, payPeriod string) ([]salary.Item, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT pay_period, item_code, item_name, category, amount, sort_order
		FROM salary_items
		WHERE company_id = $1 AND employee_id = $2 AND pay_period = $3 AND is_published = TRUE
		ORDER BY sort_order, item_code
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, payPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary items: %w", err)
	}
	defer rows.Close()

	var items []salary.Item
	for rows.Next() {
		var it salary.Item
		if err := rows.Scan(&it.PayPeriod, &it.ItemCode, &it.ItemName, &it.Category, &it.Amount, &it.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan salary item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary items: %w", err)
	}
	return items, nil
}

// ListPeriods implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ListPeriods(ctx context.Context, companyID, employeeID string, limit int) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT DISTINCT pay_period
		FROM salary_items
		WHERE company_id = $1 AND employee_id = $2 AND is_published = TRUE
		ORDER BY pay_period DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pay periods: %w", err)
	}
	defer rows.Close()

	periods := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pay periods: %w", err)
	}
	return periods, nil
}
