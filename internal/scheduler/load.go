package scheduler

import (
	"fmt"
	"sort"
	"strconv"
)

// DefaultMaxContinuousHours is the fatigue limit for uninterrupted teaching.
const DefaultMaxContinuousHours = 4.0

// LoadTracker flags instructors teaching too long without a qualifying break.
type LoadTracker struct {
	MaxContinuousHours float64
	MinBreakMinutes    int
}

// Check merges candidate into the instructor's same-day intervals and walks them chronologically.
// A gap shorter than MinBreakMinutes extends the running total; anything longer resets it.
// Only the first violation is reported.
func (t LoadTracker) Check(instructorID string, existing []Interval, candidate Interval) *Conflict {
	limit := t.MaxContinuousHours
	if limit <= 0 {
		limit = DefaultMaxContinuousHours
	}

	intervals := make([]Interval, 0, len(existing)+1)
	intervals = append(intervals, existing...)
	intervals = append(intervals, candidate)
	sort.SliceStable(intervals, func(i, j int) bool {
		if intervals[i].Start == intervals[j].Start {
			return intervals[i].End < intervals[j].End
		}
		return intervals[i].Start < intervals[j].Start
	})

	var continuous float64
	for i, current := range intervals {
		if i > 0 && int(current.Start-intervals[i-1].End) < t.MinBreakMinutes {
			continuous += current.Hours()
		} else {
			continuous = current.Hours()
		}
		if continuous > limit {
			return &Conflict{
				Kind:     ConflictTime,
				Severity: SeverityMedium,
				Message: fmt.Sprintf("instructor %s teaches %s continuous hours, exceeding the %s hour limit",
					instructorID, formatHours(continuous), formatHours(limit)),
				AffectedResourceIDs: []string{instructorID},
			}
		}
	}
	return nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
