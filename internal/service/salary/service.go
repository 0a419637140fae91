package salary

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// periodsShown is how many recent pay periods the client can pick from.
const periodsShown = 24

type SalaryServiceImpl struct {
	salary.SalaryRepository
	employee.EmployeeRepository
}

// MonthlySlip implements salary.SalaryService.
func (s *SalaryServiceImpl) MonthlySlip(ctx context.Context, companyID, employeeID, payPeriod string) (salary.Slip, error) {
	items, err := s.SalaryRepository.GetItems(ctx, companyID, employeeID, payPeriod)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to get salary items: %w", err)
	}
	if len(items) == 0 {
		return salary.Slip{}, salary.ErrSlipNotFound
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to get employee: %w", err)
	}

	slip := BuildSlip(payPeriod, items)
	slip.EmployeeNo = emp.EmployeeNo
	slip.EmployeeName = emp.FullName
	return slip, nil
}

// BuildSlip splits items into earnings and deductions and totals them.
// Net pay is earnings minus deductions and may be negative.
func BuildSlip(payPeriod string, items []salary.Item) salary.Slip {
	slip := salary.Slip{
		PayPeriod:       payPeriod,
		Earnings:        []salary.SlipLine{},
		Deductions:      []salary.SlipLine{},
		TotalEarnings:   decimal.Zero,
		TotalDeductions: decimal.Zero,
	}

	for _, item := range items {
		line := salary.SlipLine{Code: item.ItemCode, Name: item.ItemName, Amount: item.Amount}
		switch item.Category {
		case salary.CategoryDeduction:
			slip.Deductions = append(slip.Deductions, line)
			slip.TotalDeductions = slip.TotalDeductions.Add(item.Amount)
		default:
			slip.Earnings = append(slip.Earnings, line)
			slip.TotalEarnings = slip.TotalEarnings.Add(item.Amount)
		}
	}

	slip.NetPay = slip.TotalEarnings.Sub(slip.TotalDeductions)
	return slip
}

// Periods implements salary.SalaryService.
func (s *SalaryServiceImpl) Periods(ctx context.Context, companyID, employeeID string) (salary.PeriodsResponse, error) {
	periods, err := s.SalaryRepository.ListPeriods(ctx, companyID, employeeID, periodsShown)
	if err != nil {
		return salary.PeriodsResponse{}, fmt.Errorf("failed to list pay periods: %w", err)
	}
	if periods == nil {
		periods = []string{}
	}
	return salary.PeriodsResponse{Periods: periods}, nil
}

func NewSalaryService(salaryRepo salary.SalaryRepository, employeeRepo employee.EmployeeRepository) salary.SalaryService {
	return &SalaryServiceImpl{
		SalaryRepository:   salaryRepo,
		EmployeeRepository: employeeRepo,
	}
}
