package leave

import (
	"sort"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/shopspring/decimal"
)

const dayScale = 2

type balanceAcc struct {
	grant      leave.LeaveGrantRow
	totalHours decimal.Decimal
	usedHours  decimal.Decimal
}

// Aggregate computes the balance of every leave type granted inside window.
// Grant values are hours for HOUR leave types and days for DAY leave types.
// Usage rows count when flagged as counted and starting inside the window;
// each contributes max(0, ask - cancel) hours. Leave types without a grant in
// the window are omitted. Results are ordered by leave type code.
func Aggregate(window leave.EntitlementWindow, grants []leave.LeaveGrantRow, usages []leave.LeaveUsageRow, dayWorkHours decimal.Decimal) ([]leave.LeaveTypeBalance, error) {
	if !dayWorkHours.IsPositive() {
		return nil, leave.ErrInvalidWorkHours
	}

	byCode := make(map[string]*balanceAcc)
	for _, g := range grants {
		if !window.Contains(g.EffectiveDate) {
			continue
		}
		acc, ok := byCode[g.LeaveCode]
		if !ok {
			acc = &balanceAcc{grant: g}
			byCode[g.LeaveCode] = acc
		}
		acc.totalHours = acc.totalHours.Add(toHours(g.UnitType, g.GrantValue, dayWorkHours))
	}

	for _, u := range usages {
		if !u.IsCounted || !window.Contains(u.StartTime) {
			continue
		}
		acc, ok := byCode[u.LeaveCode]
		if !ok {
			continue
		}
		used := u.AskLeaveHours.Sub(u.CancelHours)
		if used.IsPositive() {
			acc.usedHours = acc.usedHours.Add(used)
		}
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	balances := make([]leave.LeaveTypeBalance, 0, len(codes))
	for _, code := range codes {
		balances = append(balances, buildBalance(byCode[code], dayWorkHours))
	}
	return balances, nil
}

func buildBalance(acc *balanceAcc, dayWorkHours decimal.Decimal) leave.LeaveTypeBalance {
	remainingTotal := acc.totalHours.Sub(acc.usedHours)
	if remainingTotal.IsNegative() {
		remainingTotal = decimal.Zero
	}
	remainingDays := remainingTotal.Div(dayWorkHours).Floor()
	remainingHours := remainingTotal.Sub(remainingDays.Mul(dayWorkHours))

	return leave.LeaveTypeBalance{
		LeaveTypeCode:       acc.grant.LeaveCode,
		LeaveTypeName:       acc.grant.LeaveName,
		MinUnitHours:        toHours(acc.grant.UnitType, acc.grant.MinUnit, dayWorkHours),
		TotalDays:           acc.totalHours.Div(dayWorkHours).Round(dayScale),
		TotalHours:          acc.totalHours,
		UsedDays:            acc.usedHours.Div(dayWorkHours).Round(dayScale),
		UsedHours:           acc.usedHours,
		RemainingDays:       remainingDays,
		RemainingHours:      remainingHours,
		RemainingTotalHours: remainingTotal,
		DisplayText:         DisplayText(remainingDays, remainingHours),
	}
}

func toHours(unit leave.UnitType, value, dayWorkHours decimal.Decimal) decimal.Decimal {
	if unit == leave.UnitHour {
		return value
	}
	return value.Mul(dayWorkHours)
}

// DisplayText renders a remaining balance as "{d} 天" or "{d} 天 {h} 小時".
func DisplayText(days, hours decimal.Decimal) string {
	if hours.IsZero() {
		return days.String() + " 天"
	}
	return days.String() + " 天 " + hours.String() + " 小時"
}

// Summary projects a detailed balance onto the compact endpoint shape.
func Summary(b leave.LeaveTypeBalance, dayWorkHours decimal.Decimal) leave.LeaveBalanceSummary {
	return leave.LeaveBalanceSummary{
		LeaveType:     b.LeaveTypeName,
		AnnualQuota:   b.TotalDays,
		DeductedDays:  b.UsedDays,
		RemainingDays: b.RemainingTotalHours.Div(dayWorkHours).Round(dayScale),
	}
}
