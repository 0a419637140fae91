package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(value string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		panic(err)
	}
	return &t
}

var workDay = time.Date(2025, 10, 31, 0, 0, 0, 0, time.Local)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		actual     *time.Time
		code       string
		wantTime   string
		wantStatus string
	}{
		{"not clocked ignores punch", at("2025-10-31 08:00:00"), "0", "應刷未刷", "應刷未刷"},
		{"absence ignores punch", at("2025-10-31 08:00:00"), "4", "應刷未刷", "應刷未刷"},
		{"normal with punch", at("2025-10-31 08:00:00"), "", "2025/10/31 08:00:00", "正常"},
		{"overtime attendance reads as normal", at("2025-10-31 21:00:00"), "3", "2025/10/31 21:00:00", "正常"},
		{"normal without punch", nil, "", "應刷未刷", "應刷未刷"},
		{"normal with sentinel date", at("1900-01-01 00:00:00"), "", "應刷未刷", "應刷未刷"},
		{"late with punch", at("2025-10-31 08:30:00"), "1", "2025/10/31 08:30:00", "遲到"},
		{"early leave with punch", at("2025-10-31 16:10:00"), "2", "2025/10/31 16:10:00", "早退"},
		{"late without punch keeps label", nil, "1", "應刷未刷", "遲到"},
		{"code is trimmed", at("2025-10-31 08:30:00"), " 1 ", "2025/10/31 08:30:00", "遲到"},
		{"unknown code", at("2025-10-31 08:30:00"), "9", "2025/10/31 08:30:00", "異常"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTime, gotStatus := Classify(tt.actual, tt.code)
			assert.Equal(t, tt.wantTime, gotTime)
			assert.Equal(t, tt.wantStatus, gotStatus)
		})
	}
}

func TestNormalize_NoRows(t *testing.T) {
	_, err := Normalize(nil, workDay)
	assert.ErrorIs(t, err, attendance.ErrNoRecord)

	_, err = Normalize([]attendance.RawPunchRow{}, workDay)
	assert.ErrorIs(t, err, attendance.ErrNoRecord)
}

func TestNormalize_MissingClockOutKeepsSentinel(t *testing.T) {
	rows := []attendance.RawPunchRow{
		{EmployeeID: "E001", WorkDate: workDay, CardType: attendance.CardTypeClockIn, AnomalyCode: "4"},
	}

	record, err := Normalize(rows, workDay)
	require.NoError(t, err)

	assert.Equal(t, "2025/10/31", record.Date)
	assert.Equal(t, "應刷未刷", record.ClockInTime)
	assert.Equal(t, "應刷未刷", record.ClockInStatus)
	assert.Equal(t, "4", record.ClockInCode)
	assert.Equal(t, "應刷未刷", record.ClockOutTime)
	assert.Equal(t, "應刷未刷", record.ClockOutStatus)
	assert.Equal(t, "", record.ClockOutCode)
}

func TestNormalize_LateClockIn(t *testing.T) {
	rows := []attendance.RawPunchRow{
		{EmployeeID: "E001", WorkDate: workDay, CardType: attendance.CardTypeClockIn, ActualTime: at("2025-10-31 08:30:00"), AnomalyCode: "1"},
		{EmployeeID: "E001", WorkDate: workDay, CardType: attendance.CardTypeClockOut, ActualTime: at("2025-10-31 21:00:00"), AnomalyCode: "3"},
	}

	record, err := Normalize(rows, workDay)
	require.NoError(t, err)

	assert.Equal(t, "2025/10/31 08:30:00", record.ClockInTime)
	assert.Equal(t, "遲到", record.ClockInStatus)
	assert.Equal(t, "1", record.ClockInCode)
	assert.Equal(t, "2025/10/31 21:00:00", record.ClockOutTime)
	assert.Equal(t, "正常", record.ClockOutStatus)
	assert.Equal(t, "3", record.ClockOutCode)
}

func TestNormalize_OrderIndependent(t *testing.T) {
	in := attendance.RawPunchRow{EmployeeID: "E001", WorkDate: workDay, CardType: attendance.CardTypeClockIn, ActualTime: at("2025-10-31 08:55:00")}
	out := attendance.RawPunchRow{EmployeeID: "E001", WorkDate: workDay, CardType: attendance.CardTypeClockOut, ActualTime: at("2025-10-31 16:10:00"), AnomalyCode: "2"}

	first, err := Normalize([]attendance.RawPunchRow{in, out}, workDay)
	require.NoError(t, err)
	second, err := Normalize([]attendance.RawPunchRow{out, in}, workDay)
	require.NoError(t, err)
	again, err := Normalize([]attendance.RawPunchRow{in, out}, workDay)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, again)
}

func TestNormalize_DuplicateCardTypeIsDeterministic(t *testing.T) {
	early := attendance.RawPunchRow{CardType: attendance.CardTypeClockIn, ActualTime: at("2025-10-31 08:50:00")}
	late := attendance.RawPunchRow{CardType: attendance.CardTypeClockIn, ActualTime: at("2025-10-31 09:10:00"), AnomalyCode: "1"}
	missing := attendance.RawPunchRow{CardType: attendance.CardTypeClockIn, AnomalyCode: "0"}

	a, err := Normalize([]attendance.RawPunchRow{late, missing, early}, workDay)
	require.NoError(t, err)
	b, err := Normalize([]attendance.RawPunchRow{early, late, missing}, workDay)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "2025/10/31 08:50:00", a.ClockInTime)
	assert.Equal(t, "正常", a.ClockInStatus)
}

func TestGroupByWorkDate(t *testing.T) {
	d1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2025, 10, 2, 0, 0, 0, 0, time.Local)
	rows := []attendance.RawPunchRow{
		{WorkDate: d2, CardType: attendance.CardTypeClockIn},
		{WorkDate: d1, CardType: attendance.CardTypeClockIn},
		{WorkDate: d2, CardType: attendance.CardTypeClockOut},
	}

	days, byDay := GroupByWorkDate(rows)
	require.Len(t, days, 2)
	assert.True(t, days[0].Equal(d1))
	assert.True(t, days[1].Equal(d2))
	assert.Len(t, byDay["2025-10-02"], 2)
	assert.Len(t, byDay["2025-10-01"], 1)
}
