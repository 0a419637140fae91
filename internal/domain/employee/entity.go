package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDayWorkHours applies when the HR record has no daily work-hour setting.
var DefaultDayWorkHours = decimal.NewFromInt(8)

type Employee struct {
	ID             string
	CompanyID      string
	CompanyName    string
	EmployeeNo     string
	FullName       string
	EnglishName    *string
	Email          *string
	Mobile         *string
	OfficePhone    *string
	Extension      *string
	JobTitle       *string
	DepartmentName *string
	PhotoPath      *string
	HireDate       *time.Time
	DayWorkHours   *decimal.Decimal
	Status         EmploymentStatus
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusSuspend  EmploymentStatus = "suspended"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)

// WorkHoursPerDay returns the employee's daily work hours, falling back to
// DefaultDayWorkHours when unset or non-positive.
func (e Employee) WorkHoursPerDay() decimal.Decimal {
	if e.DayWorkHours == nil || !e.DayWorkHours.IsPositive() {
		return DefaultDayWorkHours
	}
	return *e.DayWorkHours
}

func (e Employee) IsActive() bool {
	return e.Status == EmploymentStatusActive
}
