package scheduler

import (
	"fmt"
	"strings"
	"time"
)

func (k ResourceKind) conflictKind() ConflictKind {
	switch k {
	case ResourceInstructor:
		return ConflictInstructor
	case ResourceClassroom:
		return ConflictClassroom
	default:
		return ConflictTrainee
	}
}

// Instructor overlaps are CRITICAL, classroom and trainee-group overlaps HIGH.
func (k ResourceKind) severity() Severity {
	if k == ResourceInstructor {
		return SeverityCritical
	}
	return SeverityHigh
}

func (k ResourceKind) label() string {
	switch k {
	case ResourceInstructor:
		return "instructor"
	case ResourceClassroom:
		return "classroom"
	default:
		return "trainee group"
	}
}

// FindConflicts reports one conflict per booked slot of resourceID on date that overlaps candidate.
// The slot whose ID equals excludeID is ignored so an existing session can be revalidated against itself.
func FindConflicts(resourceID string, kind ResourceKind, date time.Time, candidate Interval, bookings *BookingIndex, excludeID string) []Conflict {
	if resourceID == "" {
		return nil
	}
	var conflicts []Conflict
	for _, slot := range bookings.OnDate(resourceID, date) {
		if excludeID != "" && slot.ID == excludeID {
			continue
		}
		if !candidate.Overlaps(slot.Interval()) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Kind:                kind.conflictKind(),
			Severity:            kind.severity(),
			Message:             conflictMessage(kind, resourceID, date, slot),
			AffectedResourceIDs: []string{resourceID},
		})
	}
	return conflicts
}

func conflictMessage(kind ResourceKind, resourceID string, date time.Time, slot BookedSlot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s is already booked on %s %s", kind.label(), resourceID, DateKey(date), slot.Interval())
	if slot.Label != "" {
		fmt.Fprintf(&b, " (%s)", slot.Label)
	}
	return b.String()
}
