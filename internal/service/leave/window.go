package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
)

// ComputeWindow returns the anniversary window of an employee for targetYear.
//
// When targetYear is the current year the window is the one containing today,
// which starts last year if this year's anniversary has not come yet. Any
// other year yields the window starting on that year's anniversary. Windows
// run from one anniversary to the day before the next.
func ComputeWindow(hireDate time.Time, targetYear int, today time.Time) (leave.EntitlementWindow, error) {
	if hireDate.IsZero() {
		return leave.EntitlementWindow{}, leave.ErrHireDateNotFound
	}

	loc := hireDate.Location()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	startYear := targetYear
	if targetYear == today.Year() && today.Before(anniversary(hireDate, targetYear)) {
		startYear--
	}

	return leave.EntitlementWindow{
		Year:      startYear,
		StartDate: anniversary(hireDate, startYear),
		EndDate:   anniversary(hireDate, startYear+1).AddDate(0, 0, -1),
	}, nil
}

// anniversary places the hire month and day in year. Feb 29 becomes Feb 28
// in non-leap years.
func anniversary(hireDate time.Time, year int) time.Time {
	month, day := hireDate.Month(), hireDate.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, hireDate.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
