package scheduler

import (
	"sort"
	"time"
)

// BookedSlot is an existing commitment of one resource.
type BookedSlot struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resourceId"`
	Date       time.Time `json:"date"`
	Start      Clock     `json:"start"`
	End        Clock     `json:"end"`
	Label      string    `json:"label,omitempty"`
}

// Interval returns the slot's time span.
func (b BookedSlot) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

type resourceDay struct {
	resourceID string
	date       string
}

// BookingIndex is an immutable arena of booked slots indexed by resource and date.
type BookingIndex struct {
	slots []BookedSlot
	byDay map[resourceDay][]int
}

// NewBookingIndex copies slots into a sorted arena. Later changes to the input do not affect the index.
func NewBookingIndex(slots []BookedSlot) *BookingIndex {
	arena := make([]BookedSlot, len(slots))
	copy(arena, slots)
	for i := range arena {
		arena[i].Date = TruncateDate(arena[i].Date)
	}
	sort.SliceStable(arena, func(i, j int) bool {
		a, b := arena[i], arena[j]
		if a.ResourceID != b.ResourceID {
			return a.ResourceID < b.ResourceID
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.ID < b.ID
	})

	idx := &BookingIndex{
		slots: arena,
		byDay: make(map[resourceDay][]int),
	}
	for i, slot := range arena {
		key := resourceDay{resourceID: slot.ResourceID, date: DateKey(slot.Date)}
		idx.byDay[key] = append(idx.byDay[key], i)
	}
	return idx
}

// Len returns the number of slots in the index.
func (b *BookingIndex) Len() int {
	if b == nil {
		return 0
	}
	return len(b.slots)
}

// OnDate returns a copy of the resource's slots on date ordered by start time.
func (b *BookingIndex) OnDate(resourceID string, date time.Time) []BookedSlot {
	if b == nil || resourceID == "" {
		return nil
	}
	positions := b.byDay[resourceDay{resourceID: resourceID, date: DateKey(date)}]
	if len(positions) == 0 {
		return nil
	}
	out := make([]BookedSlot, 0, len(positions))
	for _, pos := range positions {
		out = append(out, b.slots[pos])
	}
	return out
}

// CountOnDate returns how many slots the resource holds on date.
func (b *BookingIndex) CountOnDate(resourceID string, date time.Time) int {
	if b == nil {
		return 0
	}
	return len(b.byDay[resourceDay{resourceID: resourceID, date: DateKey(date)}])
}

// Snapshot holds every read-only input of a generation run.
type Snapshot struct {
	Template           []TemplateSession
	Instructors        map[string][]Instructor
	Classrooms         []Classroom
	InstructorBookings *BookingIndex
	ClassroomBookings  *BookingIndex
	TraineeBookings    *BookingIndex
}
