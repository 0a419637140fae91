package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name      string
		hireDate  time.Time
		year      int
		today     time.Time
		wantYear  int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "current year after anniversary",
			hireDate:  date(2023, 10, 5),
			year:      2025,
			today:     date(2025, 11, 17),
			wantYear:  2025,
			wantStart: date(2025, 10, 5),
			wantEnd:   date(2026, 10, 4),
		},
		{
			name:      "current year before anniversary shifts back",
			hireDate:  date(2023, 10, 5),
			year:      2025,
			today:     date(2025, 6, 1),
			wantYear:  2024,
			wantStart: date(2024, 10, 5),
			wantEnd:   date(2025, 10, 4),
		},
		{
			name:      "anniversary day belongs to the new window",
			hireDate:  date(2023, 10, 5),
			year:      2025,
			today:     date(2025, 10, 5),
			wantYear:  2025,
			wantStart: date(2025, 10, 5),
			wantEnd:   date(2026, 10, 4),
		},
		{
			name:      "explicit past year is literal",
			hireDate:  date(2023, 10, 5),
			year:      2024,
			today:     date(2025, 6, 1),
			wantYear:  2024,
			wantStart: date(2024, 10, 5),
			wantEnd:   date(2025, 10, 4),
		},
		{
			name:      "explicit future year is literal",
			hireDate:  date(2023, 10, 5),
			year:      2026,
			today:     date(2025, 6, 1),
			wantYear:  2026,
			wantStart: date(2026, 10, 5),
			wantEnd:   date(2027, 10, 4),
		},
		{
			name:      "leap day hire in non-leap year",
			hireDate:  date(2020, 2, 29),
			year:      2025,
			today:     date(2025, 6, 1),
			wantYear:  2025,
			wantStart: date(2025, 2, 28),
			wantEnd:   date(2026, 2, 27),
		},
		{
			name:      "leap day hire in leap year",
			hireDate:  date(2020, 2, 29),
			year:      2028,
			today:     date(2025, 6, 1),
			wantYear:  2028,
			wantStart: date(2028, 2, 29),
			wantEnd:   date(2029, 2, 27),
		},
		{
			name:      "january first hire",
			hireDate:  date(2019, 1, 1),
			year:      2025,
			today:     date(2025, 1, 1),
			wantYear:  2025,
			wantStart: date(2025, 1, 1),
			wantEnd:   date(2025, 12, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ComputeWindow(tt.hireDate, tt.year, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, w.Year)
			assert.Equal(t, tt.wantStart, w.StartDate)
			assert.Equal(t, tt.wantEnd, w.EndDate)
			assert.True(t, w.Contains(w.StartDate))
			assert.True(t, w.Contains(w.EndDate))
			assert.False(t, w.Contains(w.EndDate.AddDate(0, 0, 1)))
		})
	}
}

func TestComputeWindow_CurrentWindowContainsToday(t *testing.T) {
	hire := date(2021, 7, 15)
	for day := date(2025, 1, 1); day.Year() == 2025; day = day.AddDate(0, 0, 1) {
		w, err := ComputeWindow(hire, 2025, day)
		require.NoError(t, err)
		require.True(t, w.Contains(day), "window %s..%s should contain %s", w.StartDate, w.EndDate, day)
	}
}

func TestComputeWindow_WindowsAreContiguous(t *testing.T) {
	hire := date(2020, 2, 29)
	today := date(2020, 1, 1)
	prev, err := ComputeWindow(hire, 2021, today)
	require.NoError(t, err)
	for year := 2022; year <= 2030; year++ {
		next, err := ComputeWindow(hire, year, today)
		require.NoError(t, err)
		assert.Equal(t, prev.EndDate.AddDate(0, 0, 1), next.StartDate)
		prev = next
	}
}

func TestComputeWindow_NoHireDate(t *testing.T) {
	_, err := ComputeWindow(time.Time{}, 2025, date(2025, 11, 17))
	assert.ErrorIs(t, err, leave.ErrHireDateNotFound)
}
