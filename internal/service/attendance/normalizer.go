package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
)

// Punch-clock exports use 0001-01-01 or 1900-01-01 for "no punch".
const sentinelYearCeiling = 1900

var anomalyLabels = map[string]string{
	attendance.AnomalyNotClocked:         attendance.StatusNotClocked,
	attendance.AnomalyLate:               attendance.StatusLate,
	attendance.AnomalyEarlyLeave:         attendance.StatusEarlyLeave,
	attendance.AnomalyOvertimeAttendance: attendance.StatusOvertimeAttendance,
	attendance.AnomalyAbsence:            attendance.StatusAbsence,
}

// AnomalyLabel returns the display label of a raw anomaly code.
func AnomalyLabel(code string) string {
	code = strings.TrimSpace(code)
	if code == attendance.AnomalyNormal {
		return attendance.StatusNormal
	}
	if label, ok := anomalyLabels[code]; ok {
		return label
	}
	return attendance.StatusUnknownAnomaly
}

func isRealTimestamp(t *time.Time) bool {
	return t != nil && !t.IsZero() && t.Year() > sentinelYearCeiling
}

// Classify maps a punch's actual time and anomaly code to the time and status
// shown to the employee. Rules are evaluated in order; the first match wins.
func Classify(actualTime *time.Time, anomalyCode string) (displayTime, displayStatus string) {
	code := strings.TrimSpace(anomalyCode)

	switch code {
	case attendance.AnomalyNotClocked, attendance.AnomalyAbsence:
		return attendance.StatusNotClocked, attendance.StatusNotClocked

	case attendance.AnomalyNormal, attendance.AnomalyOvertimeAttendance:
		if isRealTimestamp(actualTime) {
			return actualTime.Format(attendance.DisplayDateTimeLayout), attendance.StatusNormal
		}
		return attendance.StatusNotClocked, attendance.StatusNotClocked
	}

	label := AnomalyLabel(code)
	if isRealTimestamp(actualTime) {
		return actualTime.Format(attendance.DisplayDateTimeLayout), label
	}
	return attendance.StatusNotClocked, label
}

// Normalize folds the punch rows of one employee and one day into an
// AttendanceRecord. An empty row set is attendance.ErrNoRecord; a missing
// card type keeps the not-clocked pair. When the source holds duplicate rows
// for a card type, the earliest actual punch wins, so row order never
// changes the result.
func Normalize(rows []attendance.RawPunchRow, queryDate time.Time) (attendance.AttendanceRecord, error) {
	if len(rows) == 0 {
		return attendance.AttendanceRecord{}, attendance.ErrNoRecord
	}

	record := attendance.AttendanceRecord{
		Date:           queryDate.Format(attendance.DisplayDateLayout),
		ClockInTime:    attendance.StatusNotClocked,
		ClockInStatus:  attendance.StatusNotClocked,
		ClockOutTime:   attendance.StatusNotClocked,
		ClockOutStatus: attendance.StatusNotClocked,
	}

	if row, ok := pick(rows, attendance.CardTypeClockIn); ok {
		record.ClockInTime, record.ClockInStatus = Classify(row.ActualTime, row.AnomalyCode)
		record.ClockInCode = strings.TrimSpace(row.AnomalyCode)
	}
	if row, ok := pick(rows, attendance.CardTypeClockOut); ok {
		record.ClockOutTime, record.ClockOutStatus = Classify(row.ActualTime, row.AnomalyCode)
		record.ClockOutCode = strings.TrimSpace(row.AnomalyCode)
	}

	return record, nil
}

func pick(rows []attendance.RawPunchRow, cardType attendance.CardType) (attendance.RawPunchRow, bool) {
	var candidates []attendance.RawPunchRow
	for _, row := range rows {
		if row.CardType == cardType {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return attendance.RawPunchRow{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return punchLess(candidates[i], candidates[j])
	})
	return candidates[0], true
}

// punchLess orders real punches before missing ones, then by time, then by code.
func punchLess(a, b attendance.RawPunchRow) bool {
	aReal, bReal := isRealTimestamp(a.ActualTime), isRealTimestamp(b.ActualTime)
	if aReal != bReal {
		return aReal
	}
	if aReal && !a.ActualTime.Equal(*b.ActualTime) {
		return a.ActualTime.Before(*b.ActualTime)
	}
	return strings.TrimSpace(a.AnomalyCode) < strings.TrimSpace(b.AnomalyCode)
}

// GroupByWorkDate splits a range of punch rows into per-day sets, ordered by date.
func GroupByWorkDate(rows []attendance.RawPunchRow) ([]time.Time, map[string][]attendance.RawPunchRow) {
	byDay := make(map[string][]attendance.RawPunchRow)
	var days []time.Time
	for _, row := range rows {
		key := row.WorkDate.Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			days = append(days, row.WorkDate)
		}
		byDay[key] = append(byDay[key], row)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, byDay
}
