package salary

import "github.com/shopspring/decimal"

// Category splits salary items into the two sides of a slip.
type Category string

const (
	CategoryEarning   Category = "earning"
	CategoryDeduction Category = "deduction"
)

// Item is one line of a pay period as stored by payroll.
type Item struct {
	PayPeriod string
	ItemCode  string
	ItemName  string
	Category  Category
	Amount    decimal.Decimal
	SortOrder int
}

type SlipLine struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Slip is the monthly pay slip shown to an employee.
type Slip struct {
	PayPeriod       string          `json:"pay_period"`
	EmployeeNo      string          `json:"employee_no"`
	EmployeeName    string          `json:"employee_name"`
	Earnings        []SlipLine      `json:"earnings"`
	Deductions      []SlipLine      `json:"deductions"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}
