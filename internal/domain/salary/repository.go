package salary

import "context"

type SalaryRepository interface {
	// GetItems returns the items of one pay period ordered by sort order
	GetItems(ctx context.Context, companyID, employeeID, payPeriod string) ([]Item, error)

	// ListPeriods returns the most recent pay periods, newest first
	ListPeriods(ctx context.Context, companyID, employeeID string, limit int) ([]string, error)
}
