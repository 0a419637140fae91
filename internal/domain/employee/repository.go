package employee

import "context"

// EmployeeRepository reads employee master data from the HR database.
// Every lookup is scoped by company id; employee ids are only unique per company.
type EmployeeRepository interface {
	GetByID(ctx context.Context, companyID, id string) (Employee, error)
	GetByEmployeeNo(ctx context.Context, companyID, employeeNo string) (Employee, error)
}
