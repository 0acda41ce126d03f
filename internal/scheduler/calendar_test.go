package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDate(raw)
	require.NoError(t, err)
	return d
}

func TestNextWorkingDaySkipsWeekend(t *testing.T) {
	cal := NewCalendar(nil)
	saturday := mustDate(t, "2025-03-08")

	next := cal.NextWorkingDay(saturday, true, false)
	assert.Equal(t, "2025-03-10", DateKey(next))
	assert.Equal(t, time.Monday, next.Weekday())

	assert.Equal(t, "2025-03-08", DateKey(cal.NextWorkingDay(saturday, false, false)))
}

func TestNextWorkingDayReturnsWorkingInput(t *testing.T) {
	cal := NewCalendar(nil)
	wednesday := mustDate(t, "2025-03-05")
	assert.Equal(t, wednesday, cal.NextWorkingDay(wednesday, true, true))
}

func TestNextWorkingDaySkipsHolidays(t *testing.T) {
	holidays := HolidaySet{"2025-03-03": "Substitute holiday", "2025-03-04": "Made-up holiday"}
	cal := NewCalendar(holidays)
	monday := mustDate(t, "2025-03-03")

	assert.Equal(t, "2025-03-05", DateKey(cal.NextWorkingDay(monday, true, true)))
	assert.Equal(t, "2025-03-03", DateKey(cal.NextWorkingDay(monday, true, false)))
}

func TestNextWorkingDayCombinesRules(t *testing.T) {
	// Friday holiday followed by a weekend lands on Monday.
	cal := NewCalendar(HolidaySet{"2025-10-03": "National Foundation Day"})
	assert.Equal(t, "2025-10-06", DateKey(cal.NextWorkingDay(mustDate(t, "2025-10-03"), true, true)))
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	_, err := ParseDate("2025/03/01")
	require.Error(t, err)
	var invalid *InvalidDateError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "2025/03/01", invalid.Value)
}

func TestHolidaySetMerge(t *testing.T) {
	base := HolidaySet{"2025-01-01": "New Year"}
	merged := base.Merge(HolidaySet{"2025-05-05": "Children's Day"})

	assert.True(t, merged.IsHoliday(mustDate(t, "2025-01-01")))
	assert.Equal(t, "Children's Day", merged.Name(mustDate(t, "2025-05-05")))
	assert.Len(t, base, 1)
}
