package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConflictsSeverityByKind(t *testing.T) {
	date := mustDate(t, "2025-03-03")
	slots := []BookedSlot{
		{ID: "b-1", ResourceID: "ins-1", Date: date, Start: h(9), End: h(12), Label: "Fire Safety"},
		{ID: "b-2", ResourceID: "room-1", Date: date, Start: h(10), End: h(11)},
		{ID: "b-3", ResourceID: "round-1", Date: date, Start: h(11), End: h(13)},
	}
	idx := NewBookingIndex(slots)
	candidate := NewInterval(h(10), 2)

	instructor := FindConflicts("ins-1", ResourceInstructor, date, candidate, idx, "")
	require.Len(t, instructor, 1)
	assert.Equal(t, SeverityCritical, instructor[0].Severity)
	assert.Equal(t, ConflictInstructor, instructor[0].Kind)
	assert.Equal(t, []string{"ins-1"}, instructor[0].AffectedResourceIDs)
	assert.Contains(t, instructor[0].Message, "09:00-12:00")
	assert.Contains(t, instructor[0].Message, "Fire Safety")

	room := FindConflicts("room-1", ResourceClassroom, date, candidate, idx, "")
	require.Len(t, room, 1)
	assert.Equal(t, SeverityHigh, room[0].Severity)

	trainee := FindConflicts("round-1", ResourceTrainee, date, candidate, idx, "")
	require.Len(t, trainee, 1)
	assert.Equal(t, SeverityHigh, trainee[0].Severity)
	assert.Equal(t, ConflictTrainee, trainee[0].Kind)
}

func TestFindConflictsNoDeduplicationAndExclude(t *testing.T) {
	date := mustDate(t, "2025-03-03")
	slots := []BookedSlot{
		{ID: "b-1", ResourceID: "ins-1", Date: date, Start: h(9), End: h(10)},
		{ID: "b-2", ResourceID: "ins-1", Date: date, Start: h(10), End: h(11)},
		{ID: "b-3", ResourceID: "ins-1", Date: date, Start: h(11), End: h(12)},
		{ID: "b-4", ResourceID: "ins-1", Date: date.AddDate(0, 0, 1), Start: h(9), End: h(12)},
	}
	idx := NewBookingIndex(slots)
	candidate := Interval{Start: h(9.5), End: h(11)}

	conflicts := FindConflicts("ins-1", ResourceInstructor, date, candidate, idx, "")
	assert.Len(t, conflicts, 2)

	conflicts = FindConflicts("ins-1", ResourceInstructor, date, candidate, idx, "b-1")
	assert.Len(t, conflicts, 1)

	assert.Empty(t, FindConflicts("", ResourceInstructor, date, candidate, idx, ""))
	assert.Empty(t, FindConflicts("ins-1", ResourceInstructor, date, candidate, nil, ""))
}

func TestFindConflictsDoesNotMutateSnapshot(t *testing.T) {
	date := mustDate(t, "2025-03-03")
	slots := []BookedSlot{{ID: "b-1", ResourceID: "ins-1", Date: date, Start: h(9), End: h(12)}}
	idx := NewBookingIndex(slots)
	slots[0].End = h(9.5)

	_ = FindConflicts("ins-1", ResourceInstructor, date, NewInterval(h(10), 1), idx, "")
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, h(12), idx.OnDate("ins-1", date)[0].End)
}
