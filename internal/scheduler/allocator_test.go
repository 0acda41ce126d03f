package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankInstructorsScoresAndFilters(t *testing.T) {
	date := mustDate(t, "2025-03-03")
	directory := map[string][]Instructor{
		"safety": {
			{ID: "ins-a", Name: "Kim"},
			{ID: "ins-b", Name: "Lee"},
			{ID: "ins-c", Name: "Park"},
			{ID: "ins-d", Name: "Choi"},
		},
		"first-aid": {{ID: "ins-z", Name: "Jung"}},
	}
	bookings := NewBookingIndex([]BookedSlot{
		{ID: "1", ResourceID: "ins-a", Date: date, Start: h(9), End: h(10)},
		{ID: "2", ResourceID: "ins-b", Date: date, Start: h(14), End: h(15)},
		{ID: "3", ResourceID: "ins-b", Date: date, Start: h(16), End: h(17)},
		{ID: "4", ResourceID: "ins-c", Date: date, Start: h(10), End: h(11)},
	})
	candidate := NewInterval(h(10), 2)

	ranked := RankInstructors("safety", date, candidate, directory, bookings, "ins-b")
	require.Len(t, ranked, 3)
	assert.Equal(t, InstructorCandidate{ResourceID: "ins-b", Name: "Lee", Score: 90}, ranked[0])
	assert.Equal(t, InstructorCandidate{ResourceID: "ins-d", Name: "Choi", Score: 50}, ranked[1])
	assert.Equal(t, InstructorCandidate{ResourceID: "ins-a", Name: "Kim", Score: 45}, ranked[2])

	for _, c := range ranked {
		assert.NotEqual(t, "ins-c", c.ResourceID, "overlapping instructor must be excluded")
		assert.NotEqual(t, "ins-z", c.ResourceID, "instructor of another subject must be ignored")
	}
}

func TestRankInstructorsEmptyIsValid(t *testing.T) {
	date := mustDate(t, "2025-03-03")
	ranked := RankInstructors("unknown", date, NewInterval(h(9), 1), nil, nil, "")
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankClassroomsExcludesAnyBookingThatDay(t *testing.T) {
	date := mustDate(t, "2025-03-03")
	rooms := []Classroom{
		{ID: "room-small", Name: "Small", Capacity: 20},
		{ID: "room-large", Name: "Large", Capacity: 80},
		{ID: "room-busy", Name: "Busy", Capacity: 200},
		{ID: "room-pref", Name: "Preferred", Capacity: 10},
	}
	bookings := NewBookingIndex([]BookedSlot{
		{ID: "1", ResourceID: "room-busy", Date: date, Start: h(17), End: h(18)},
		{ID: "2", ResourceID: "room-small", Date: date.AddDate(0, 0, 1), Start: h(9), End: h(18)},
	})

	ranked := RankClassrooms(date, rooms, bookings, "room-pref")
	require.Len(t, ranked, 3)
	assert.Equal(t, "room-pref", ranked[0].ResourceID)
	assert.Equal(t, 101, ranked[0].Score)
	assert.Equal(t, "room-large", ranked[1].ResourceID)
	assert.Equal(t, 58, ranked[1].Score)
	assert.Equal(t, "room-small", ranked[2].ResourceID)
	assert.Equal(t, 52, ranked[2].Score)
}

func TestRankingIsDeterministicOnTies(t *testing.T) {
	date := mustDate(t, "2025-03-03")
	rooms := []Classroom{{ID: "b", Capacity: 30}, {ID: "a", Capacity: 30}, {ID: "c", Capacity: 30}}
	for i := 0; i < 5; i++ {
		ranked := RankClassrooms(date, rooms, nil, "")
		require.Len(t, ranked, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{ranked[0].ResourceID, ranked[1].ResourceID, ranked[2].ResourceID})
	}
}
