package employee

import "context"

type EmployeeService interface {
	GetBusinessCard(ctx context.Context, companyID, employeeID string) (BusinessCard, error)
}
