package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitType is the unit a leave type is granted and requested in.
type UnitType string

const (
	UnitDay  UnitType = "DAY"
	UnitHour UnitType = "HOUR"
)

// LeaveClass separates entitlement-backed leave from leave that needs no balance.
type LeaveClass string

const (
	ClassQuota LeaveClass = "quota" // annual, compensatory: bounded by grants
	ClassFree  LeaveClass = "free"  // unpaid, bereavement: no balance check
)

// LeaveType entity
type LeaveType struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"-"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Class     LeaveClass      `json:"class"`
	UnitType  UnitType        `json:"unit_type"`
	MinUnit   decimal.Decimal `json:"min_unit"`
	SortOrder int             `json:"sort_order"`
	IsActive  bool            `json:"-"`
}

// LeaveGrantRow is one entitlement grant, joined with its leave type.
type LeaveGrantRow struct {
	EmployeeID    string
	LeaveRefID    string
	LeaveCode     string
	LeaveName     string
	LeaveClass    LeaveClass
	UnitType      UnitType
	MinUnit       decimal.Decimal
	GrantValue    decimal.Decimal // hours for HOUR, days for DAY
	EffectiveDate time.Time
}

// LeaveUsageRow is one leave taken against a leave type.
type LeaveUsageRow struct {
	EmployeeID    string
	LeaveCode     string
	StartTime     time.Time
	EndTime       time.Time
	AskLeaveHours decimal.Decimal
	CancelHours   decimal.Decimal
	IsCounted     bool
}

// EntitlementWindow is the anniversary year a balance is computed over.
// Both ends are inclusive calendar dates.
type EntitlementWindow struct {
	EmployeeID string
	Year       int
	StartDate  time.Time
	EndDate    time.Time
}

// Contains reports whether t falls on a calendar day inside the window.
func (w EntitlementWindow) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.StartDate.Location())
	return !day.Before(w.StartDate) && !day.After(w.EndDate)
}

// LeaveTypeBalance is the detailed balance of one leave type within a window.
type LeaveTypeBalance struct {
	LeaveTypeCode       string          `json:"leaveTypeCode"`
	LeaveTypeName       string          `json:"leaveTypeName"`
	MinUnitHours        decimal.Decimal `json:"minUnitHours"`
	TotalDays           decimal.Decimal `json:"totalDays"`
	TotalHours          decimal.Decimal `json:"totalHours"`
	UsedDays            decimal.Decimal `json:"usedDays"`
	UsedHours           decimal.Decimal `json:"usedHours"`
	RemainingDays       decimal.Decimal `json:"remainDays"`
	RemainingHours      decimal.Decimal `json:"remainHours"`
	RemainingTotalHours decimal.Decimal `json:"remainTotalHours"`
	DisplayText         string          `json:"displayText"`
}

// LeaveBalanceSummary is the compact per-type balance returned by the balance endpoint.
type LeaveBalanceSummary struct {
	LeaveType     string          `json:"leavetype"`
	AnnualQuota   decimal.Decimal `json:"annualquota"`
	DeductedDays  decimal.Decimal `json:"deducteddays"`
	RemainingDays decimal.Decimal `json:"remainingdays"`
}
