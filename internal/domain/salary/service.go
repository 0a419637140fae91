package salary

import "context"

type SalaryService interface {
	MonthlySlip(ctx context.Context, companyID, employeeID, payPeriod string) (Slip, error)
	Periods(ctx context.Context, companyID, employeeID string) (PeriodsResponse, error)
}
