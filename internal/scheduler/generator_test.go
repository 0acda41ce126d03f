package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseOptions() Options {
	return Options{
		StartDate:          "2025-03-07", // Friday
		RoundID:            "round-1",
		SkipWeekends:       true,
		SkipHolidays:       true,
		PreferredStartHour: 9,
		PreferredEndHour:   18,
		MaxSessionsPerDay:  4,
		MinBreakMinutes:    10,
		MaxContinuousHours: 4,
	}
}

func baseSnapshot() Snapshot {
	return Snapshot{
		Template: []TemplateSession{
			{ID: "t-3", DayNumber: 2, SessionNumber: 1, SubjectID: "first-aid", DurationHours: 2},
			{ID: "t-2", DayNumber: 1, SessionNumber: 2, SubjectID: "safety", DurationHours: 3},
			{ID: "t-1", DayNumber: 1, SessionNumber: 1, SubjectID: "safety", DurationHours: 3},
		},
		Instructors: map[string][]Instructor{
			"safety":    {{ID: "ins-1", Name: "Kim"}},
			"first-aid": {{ID: "ins-2", Name: "Lee"}},
		},
		Classrooms: []Classroom{{ID: "room-1", Name: "Hall", Capacity: 40}},
	}
}

func TestGenerateHappyPath(t *testing.T) {
	gen := NewGenerator(nil)
	result := gen.Generate(context.Background(), baseOptions(), baseSnapshot())

	require.Empty(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalSessions)
	assert.Equal(t, 3, result.SuccessfulSessions)
	assert.Equal(t, 0, result.FailedSessions)
	assert.Empty(t, result.AllConflicts)

	first, second, third := result.Sessions[0], result.Sessions[1], result.Sessions[2]
	assert.Equal(t, "t-1", first.TemplateSessionID)
	assert.Equal(t, "2025-03-07", DateKey(first.SessionDate))
	assert.Equal(t, "09:00-12:00", first.Interval().String())
	assert.Equal(t, "12:10-15:10", second.Interval().String())
	assert.Equal(t, "ins-1", second.AssignedInstructorID)
	assert.Equal(t, "room-1", second.AssignedClassroomID)
	assert.Equal(t, 60, first.QualityScore)

	// Day 2 skips the weekend.
	assert.Equal(t, "2025-03-10", DateKey(third.SessionDate))
	assert.Equal(t, "09:00-11:00", third.Interval().String())
	require.NotNil(t, result.EstimatedEndDate)
	assert.Equal(t, "2025-03-10", DateKey(*result.EstimatedEndDate))
}

func TestGenerateFlagsInstructorDoubleBooking(t *testing.T) {
	snap := baseSnapshot()
	snap.Template[1].RequiredInstructorID = "ins-1"
	snap.Template[2].RequiredInstructorID = "ins-1"
	date := mustDate(t, "2025-03-07")
	snap.InstructorBookings = NewBookingIndex([]BookedSlot{
		{ID: "existing", ResourceID: "ins-1", Date: date, Start: h(8), End: h(17), Label: "Other round"},
	})

	result := NewGenerator(nil).Generate(context.Background(), baseOptions(), snap)

	assert.False(t, result.Success)
	assert.GreaterOrEqual(t, result.FailedSessions, 1)
	var critical []Conflict
	for _, c := range result.AllConflicts {
		if c.Severity == SeverityCritical {
			critical = append(critical, c)
		}
	}
	require.NotEmpty(t, critical)
	assert.Contains(t, critical[0].AffectedResourceIDs, "ins-1")
	assert.Contains(t, critical[0].Message, "ins-1")
	assert.Equal(t, "ins-1", result.Sessions[0].AssignedInstructorID)
	assert.False(t, result.Sessions[0].Successful())
}

func TestGenerateWithoutRequiredInstructorPicksFreeCandidate(t *testing.T) {
	snap := baseSnapshot()
	snap.Instructors["safety"] = append(snap.Instructors["safety"], Instructor{ID: "ins-9", Name: "Han"})
	date := mustDate(t, "2025-03-07")
	snap.InstructorBookings = NewBookingIndex([]BookedSlot{
		{ID: "existing", ResourceID: "ins-1", Date: date, Start: h(8), End: h(17)},
	})

	result := NewGenerator(nil).Generate(context.Background(), baseOptions(), snap)

	assert.True(t, result.Success)
	assert.Equal(t, "ins-9", result.Sessions[0].AssignedInstructorID)
	assert.Equal(t, "ins-9", result.Sessions[1].AssignedInstructorID)
}

func TestGenerateNoInstructorIsNotAFailure(t *testing.T) {
	snap := baseSnapshot()
	snap.Instructors = nil
	snap.Classrooms = nil

	result := NewGenerator(nil).Generate(context.Background(), baseOptions(), snap)

	assert.True(t, result.Success)
	for _, s := range result.Sessions {
		assert.Empty(t, s.AssignedInstructorID)
		assert.Empty(t, s.AssignedClassroomID)
		assert.Equal(t, 0, s.QualityScore)
	}
}

func TestGenerateMovesOverflowToNextWorkingDay(t *testing.T) {
	snap := baseSnapshot()
	snap.Template = []TemplateSession{
		{DayNumber: 1, SessionNumber: 1, SubjectID: "safety", DurationHours: 4},
		{DayNumber: 1, SessionNumber: 2, SubjectID: "safety", DurationHours: 4},
		{DayNumber: 1, SessionNumber: 3, SubjectID: "safety", DurationHours: 4},
	}
	opts := baseOptions()
	opts.MinBreakMinutes = 30

	result := NewGenerator(nil).Generate(context.Background(), opts, snap)

	require.Len(t, result.Sessions, 3)
	assert.Equal(t, "2025-03-07", DateKey(result.Sessions[1].SessionDate))
	assert.Equal(t, "13:30-17:30", result.Sessions[1].Interval().String())
	moved := result.Sessions[2]
	assert.Equal(t, "2025-03-10", DateKey(moved.SessionDate))
	assert.Equal(t, "09:00-13:00", moved.Interval().String())
	require.Len(t, moved.Warnings, 1)
	assert.Contains(t, moved.Warnings[0], "moved to the next working day")
	assert.Contains(t, result.Warnings, moved.Warnings[0])
}

func TestGenerateWarnsWhenDayExceedsMaxSessions(t *testing.T) {
	opts := baseOptions()
	opts.MaxSessionsPerDay = 1

	result := NewGenerator(nil).Generate(context.Background(), opts, baseSnapshot())

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalSessions)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "exceeding the maximum of 1 per day")
}

func TestGenerateWarnsOnUnskippedWeekendAndHoliday(t *testing.T) {
	opts := baseOptions()
	opts.StartDate = "2025-03-08" // Saturday
	opts.SkipWeekends = false
	opts.SkipHolidays = false
	holidays := HolidaySet{"2025-03-09": "Made-up holiday"}

	result := NewGenerator(holidays).Generate(context.Background(), opts, baseSnapshot())

	assert.Equal(t, "2025-03-08", DateKey(result.Sessions[0].SessionDate))
	assert.Equal(t, "2025-03-09", DateKey(result.Sessions[2].SessionDate))
	joined := ""
	for _, w := range result.Warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, "weekend 2025-03-08")
	assert.Contains(t, joined, "holiday 2025-03-09")
}

func TestGenerateEmptyTemplateIsUnsuccessful(t *testing.T) {
	result := NewGenerator(nil).Generate(context.Background(), baseOptions(), Snapshot{})

	assert.False(t, result.Success)
	assert.Empty(t, result.Sessions)
	assert.NotNil(t, result.Sessions)
	assert.Equal(t, ErrEmptyTemplate.Error(), result.Error)
}

func TestGenerateMalformedStartDateIsUnsuccessful(t *testing.T) {
	opts := baseOptions()
	opts.StartDate = "07/03/2025"

	result := NewGenerator(nil).Generate(context.Background(), opts, baseSnapshot())

	assert.False(t, result.Success)
	assert.Empty(t, result.Sessions)
	assert.Contains(t, result.Error, "invalid date")
}

func TestGeneratePreferredClassroomRaisesScore(t *testing.T) {
	snap := baseSnapshot()
	snap.Template = []TemplateSession{
		{DayNumber: 1, SessionNumber: 1, SubjectID: "safety", DurationHours: 2, PreferredClassroomID: "room-pref"},
	}
	snap.Classrooms = []Classroom{
		{ID: "room-pref", Name: "Lab", Capacity: 20},
		{ID: "room-other", Name: "Hall", Capacity: 60},
	}

	free := NewGenerator(nil).Generate(context.Background(), baseOptions(), snap)
	require.Len(t, free.Sessions, 1)
	assert.Equal(t, "room-pref", free.Sessions[0].AssignedClassroomID)

	snap.ClassroomBookings = NewBookingIndex([]BookedSlot{
		{ID: "b", ResourceID: "room-pref", Date: mustDate(t, "2025-03-07"), Start: h(16), End: h(17)},
	})
	busy := NewGenerator(nil).Generate(context.Background(), baseOptions(), snap)
	require.Len(t, busy.Sessions, 1)
	assert.Equal(t, "room-other", busy.Sessions[0].AssignedClassroomID)

	assert.Equal(t, 10, free.Sessions[0].QualityScore-busy.Sessions[0].QualityScore)
}

func TestGenerateContinuousLoadIsNonBlocking(t *testing.T) {
	snap := baseSnapshot()
	snap.Template = []TemplateSession{
		{DayNumber: 1, SessionNumber: 1, SubjectID: "safety", DurationHours: 3, RequiredInstructorID: "ins-1"},
	}
	snap.InstructorBookings = NewBookingIndex([]BookedSlot{
		{ID: "early", ResourceID: "ins-1", Date: mustDate(t, "2025-03-07"), Start: h(7), End: h(9)},
	})

	result := NewGenerator(nil).Generate(context.Background(), baseOptions(), snap)

	assert.True(t, result.Success)
	require.Len(t, result.AllConflicts, 1)
	assert.Equal(t, SeverityMedium, result.AllConflicts[0].Severity)
	assert.Contains(t, result.AllConflicts[0].Message, "5 continuous hours")
}

func TestGenerateFlagsTraineeGroupOverlap(t *testing.T) {
	snap := baseSnapshot()
	snap.TraineeBookings = NewBookingIndex([]BookedSlot{
		{ID: "r", ResourceID: "round-1", Date: mustDate(t, "2025-03-07"), Start: h(11), End: h(12)},
	})

	result := NewGenerator(nil).Generate(context.Background(), baseOptions(), snap)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.FailedSessions)
	require.NotEmpty(t, result.Sessions[0].Conflicts)
	assert.Equal(t, ConflictTrainee, result.Sessions[0].Conflicts[0].Kind)
}

func TestGenerateCancelledReturnsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewGenerator(nil).Generate(ctx, baseOptions(), baseSnapshot())

	assert.True(t, result.Aborted)
	assert.False(t, result.Success)
	assert.NotNil(t, result.Sessions)
	assert.Empty(t, result.Error)
}

func TestGenerateIsDeterministic(t *testing.T) {
	snap := baseSnapshot()
	snap.Instructors["safety"] = []Instructor{{ID: "ins-3"}, {ID: "ins-1"}, {ID: "ins-2"}}
	gen := NewGenerator(nil)
	first := gen.Generate(context.Background(), baseOptions(), snap)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, gen.Generate(context.Background(), baseOptions(), snap))
	}
}
