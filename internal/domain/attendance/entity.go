package attendance

import "time"

// CardType tells which of the two daily punches a row represents.
type CardType int

const (
	CardTypeClockIn  CardType = 0
	CardTypeClockOut CardType = 1
)

// Anomaly codes as stored by the punch-clock system.
const (
	AnomalyNormal             = ""
	AnomalyNotClocked         = "0"
	AnomalyLate               = "1"
	AnomalyEarlyLeave         = "2"
	AnomalyOvertimeAttendance = "3"
	AnomalyAbsence            = "4"
)

// Display labels shown to employees.
const (
	StatusNotClocked         = "應刷未刷"
	StatusNormal             = "正常"
	StatusLate               = "遲到"
	StatusEarlyLeave         = "早退"
	StatusOvertimeAttendance = "加班出勤"
	StatusAbsence            = "曠職"
	StatusUnknownAnomaly     = "異常"
)

const (
	DisplayDateLayout     = "2006/01/02"
	DisplayDateTimeLayout = "2006/01/02 15:04:05"
)

// RawPunchRow is one expected punch for one employee on one work date.
type RawPunchRow struct {
	EmployeeID   string
	WorkDate     time.Time
	CardType     CardType
	ExpectedTime time.Time
	ActualTime   *time.Time
	AnomalyCode  string
}

// AttendanceRecord is the normalized view of one employee's day. Every field
// is populated so renderers never deal with nulls.
type AttendanceRecord struct {
	Date           string `json:"date"`
	ClockInTime    string `json:"clockInTime"`
	ClockInStatus  string `json:"clockInStatus"`
	ClockInCode    string `json:"clockInCode"`
	ClockOutTime   string `json:"clockOutTime"`
	ClockOutStatus string `json:"clockOutStatus"`
	ClockOutCode   string `json:"clockOutCode"`
}
