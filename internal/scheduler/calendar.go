package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO date format used for holiday keys and request payloads.
const DateLayout = "2006-01-02"

// maxCalendarScan bounds NextWorkingDay so a table marking every day as a holiday cannot stall generation.
const maxCalendarScan = 730

// InvalidDateError is returned when a date string cannot be parsed.
type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseDate parses an ISO date into a UTC midnight time.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: raw, Err: err}
	}
	return t, nil
}

// DateKey formats a date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateDate drops the time of day, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HolidayTable answers whether a date is a public holiday.
type HolidayTable interface {
	IsHoliday(date time.Time) bool
}

// HolidaySet maps ISO dates to holiday names.
type HolidaySet map[string]string

// IsHoliday implements HolidayTable.
func (h HolidaySet) IsHoliday(date time.Time) bool {
	_, ok := h[DateKey(date)]
	return ok
}

// Name returns the holiday name for a date or an empty string.
func (h HolidaySet) Name(date time.Time) string {
	return h[DateKey(date)]
}

// Merge returns a new set containing both tables. Entries from other win on collision.
func (h HolidaySet) Merge(other HolidaySet) HolidaySet {
	merged := make(HolidaySet, len(h)+len(other))
	for k, v := range h {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Calendar performs business-day arithmetic against an injected holiday table.
type Calendar struct {
	holidays HolidayTable
}

// NewCalendar builds a calendar. A nil table means no holidays.
func NewCalendar(holidays HolidayTable) *Calendar {
	if holidays == nil {
		holidays = HolidaySet(nil)
	}
	return &Calendar{holidays: holidays}
}

// IsWeekend reports Saturdays and Sundays.
func (c *Calendar) IsWeekend(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	return c.holidays.IsHoliday(date)
}

// IsWorkingDay reports whether date survives the requested skip rules.
func (c *Calendar) IsWorkingDay(date time.Time, skipWeekends, skipHolidays bool) bool {
	if skipWeekends && c.IsWeekend(date) {
		return false
	}
	if skipHolidays && c.IsHoliday(date) {
		return false
	}
	return true
}

// NextWorkingDay returns date itself when it is already a working day, otherwise the first following day that is.
func (c *Calendar) NextWorkingDay(date time.Time, skipWeekends, skipHolidays bool) time.Time {
	current := TruncateDate(date)
	for i := 0; i < maxCalendarScan && !c.IsWorkingDay(current, skipWeekends, skipHolidays); i++ {
		current = current.AddDate(0, 0, 1)
	}
	return current
}
