package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Clock is a time of day expressed as minutes after midnight.
type Clock int

// EndOfDay is the 24:00 sentinel that closes a session running until midnight.
const EndOfDay Clock = 24 * 60

var clockLayouts = []string{"15:04", "15:04:05"}

// ClockFromHours converts fractional hours (9.5 = 09:30) into a Clock.
func ClockFromHours(hours float64) Clock {
	return Clock(math.Round(hours * 60))
}

// ParseClock accepts "HH:MM" and "HH:MM:SS" values, plus "24:00" for the end of the day.
func ParseClock(raw string) (Clock, error) {
	raw = strings.TrimSpace(raw)
	if raw == "24:00" || raw == "24:00:00" {
		return EndOfDay, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Clock(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid clock value %q", raw)
}

// Hours returns the clock as fractional hours.
func (c Clock) Hours() float64 {
	return float64(c) / 60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalText renders the clock as HH:MM.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses HH:MM or HH:MM:SS.
func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Clock) bool {
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether [innerStart, innerEnd) lies entirely within [outerStart, outerEnd).
func Contains(outerStart, outerEnd, innerStart, innerEnd Clock) bool {
	return outerStart <= innerStart && innerEnd <= outerEnd
}

// Interval is a half-open span of one day.
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// NewInterval builds an interval starting at start and lasting durationHours.
func NewInterval(start Clock, durationHours float64) Interval {
	return Interval{Start: start, End: start + ClockFromHours(durationHours)}
}

// Minutes returns the interval length in minutes.
func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}

// Hours returns the interval length in fractional hours.
func (i Interval) Hours() float64 {
	return float64(i.Minutes()) / 60
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

func (i Interval) Contains(other Interval) bool {
	return Contains(i.Start, i.End, other.Start, other.End)
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
