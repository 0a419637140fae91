package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	rows      []attendance.RawPunchRow
	err       error
	gotFrom   time.Time
	gotTo     time.Time
	gotCompID string
}

func (f *fakeAttendanceRepo) GetPunchRows(ctx context.Context, companyID, employeeID string, workDate time.Time) ([]attendance.RawPunchRow, error) {
	f.gotCompID = companyID
	var out []attendance.RawPunchRow
	for _, r := range f.rows {
		if r.WorkDate.Equal(workDate) {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeAttendanceRepo) GetPunchRowsInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.RawPunchRow, error) {
	f.gotCompID, f.gotFrom, f.gotTo = companyID, from, to
	return f.rows, f.err
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeNo(ctx context.Context, companyID, employeeNo string) (employee.Employee, error) {
	return f.emp, nil
}

func TestGetDailyRecord(t *testing.T) {
	repo := &fakeAttendanceRepo{rows: []attendance.RawPunchRow{
		{WorkDate: workDay, CardType: attendance.CardTypeClockIn, ActualTime: at("2025-10-31 08:30:00"), AnomalyCode: "1"},
	}}
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})

	record, err := svc.GetDailyRecord(context.Background(), "C01", "E001", workDay)
	require.NoError(t, err)
	assert.Equal(t, "C01", repo.gotCompID)
	assert.Equal(t, "遲到", record.ClockInStatus)
	assert.Equal(t, "應刷未刷", record.ClockOutStatus)

	_, err = svc.GetDailyRecord(context.Background(), "C01", "E001", workDay.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, attendance.ErrNoRecord)
}

func TestGetDailyRecord_RepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewAttendanceService(&fakeAttendanceRepo{err: boom}, &fakeEmployeeRepo{})

	_, err := svc.GetDailyRecord(context.Background(), "C01", "E001", workDay)
	assert.ErrorIs(t, err, boom)
}

func TestGetMonthlyRecords(t *testing.T) {
	d1 := time.Date(2025, 10, 2, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.Local)
	repo := &fakeAttendanceRepo{rows: []attendance.RawPunchRow{
		{WorkDate: d1, CardType: attendance.CardTypeClockOut, ActualTime: at("2025-10-02 18:00:00")},
		{WorkDate: d2, CardType: attendance.CardTypeClockIn, AnomalyCode: "4"},
	}}
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{})

	got, err := svc.GetMonthlyRecords(context.Background(), "C01", "E001", time.Date(2025, 10, 15, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	assert.Equal(t, "2025-10", got.Month)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.Local), repo.gotFrom)
	assert.Equal(t, time.Date(2025, 10, 31, 0, 0, 0, 0, time.Local), repo.gotTo)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "2025/10/01", got.Records[0].Date)
	assert.Equal(t, "2025/10/02", got.Records[1].Date)
	assert.Equal(t, "2025/10/02 18:00:00", got.Records[1].ClockOutTime)
	assert.Equal(t, "應刷未刷", got.Records[1].ClockInTime)
}

func TestGetMonthlyRecords_EmptyMonth(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{})

	got, err := svc.GetMonthlyRecords(context.Background(), "C01", "E001", workDay)
	require.NoError(t, err)
	assert.Empty(t, got.Records)
	assert.NotNil(t, got.Records)
}
