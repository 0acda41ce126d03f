package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Generator expands curriculum templates into dated sessions.
type Generator struct {
	calendar *Calendar
}

// NewGenerator builds a generator over the given holiday table.
func NewGenerator(holidays HolidayTable) *Generator {
	return &Generator{calendar: NewCalendar(holidays)}
}

// Calendar exposes the generator's business-day calendar.
func (g *Generator) Calendar() *Calendar {
	return g.calendar
}

type dayGroup struct {
	dayNumber int
	sessions  []TemplateSession
}

// groupByDay partitions template sessions by day number, each day ordered by session number.
func groupByDay(template []TemplateSession) []dayGroup {
	sorted := make([]TemplateSession, len(template))
	copy(sorted, template)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DayNumber == sorted[j].DayNumber {
			return sorted[i].SessionNumber < sorted[j].SessionNumber
		}
		return sorted[i].DayNumber < sorted[j].DayNumber
	})

	var groups []dayGroup
	for _, ts := range sorted {
		if n := len(groups); n > 0 && groups[n-1].dayNumber == ts.DayNumber {
			groups[n-1].sessions = append(groups[n-1].sessions, ts)
			continue
		}
		groups = append(groups, dayGroup{dayNumber: ts.DayNumber, sessions: []TemplateSession{ts}})
	}
	return groups
}

// run carries the state accumulated while walking one template.
type run struct {
	gen     *Generator
	opts    Options
	snap    Snapshot
	tracker LoadTracker
	result  Result

	// placed holds intervals assigned to each instructor during this run, keyed by instructor and date.
	// It feeds only the continuous-load check; the booking snapshot stays as fetched.
	placed    map[string][]Interval
	seenDates map[string]bool
}

// Generate walks the template day by day. It never returns a Go error: hard failures (empty template,
// malformed start date, inverted business hours) yield an unsuccessful result with no sessions.
// Cancelling ctx stops the walk between days and returns the sessions produced so far.
func (g *Generator) Generate(ctx context.Context, opts Options, snap Snapshot) Result {
	opts = opts.withDefaults()
	r := &run{
		gen:       g,
		opts:      opts,
		snap:      snap,
		tracker:   LoadTracker{MaxContinuousHours: opts.MaxContinuousHours, MinBreakMinutes: opts.MinBreakMinutes},
		placed:    make(map[string][]Interval),
		seenDates: make(map[string]bool),
		result: Result{
			Sessions:     []GeneratedSession{},
			AllConflicts: []Conflict{},
			Warnings:     []string{},
		},
	}

	if len(snap.Template) == 0 {
		return r.fail(ErrEmptyTemplate)
	}
	start, err := ParseDate(opts.StartDate)
	if err != nil {
		return r.fail(err)
	}
	if opts.PreferredEndHour <= opts.PreferredStartHour {
		return r.fail(ErrInvalidWindow)
	}

	r.walk(ctx, start)
	return r.finish()
}

func (r *run) fail(err error) Result {
	r.result.Error = err.Error()
	r.result.Warnings = append(r.result.Warnings, err.Error())
	return r.result
}

func (r *run) walk(ctx context.Context, start time.Time) {
	cal := r.gen.calendar
	dayStart := ClockFromHours(r.opts.PreferredStartHour)
	dayEnd := ClockFromHours(r.opts.PreferredEndHour)

	current := start
	for _, group := range groupByDay(r.snap.Template) {
		if err := ctx.Err(); err != nil {
			r.result.Aborted = true
			r.warn(fmt.Sprintf("generation aborted before day %d: %v", group.dayNumber, err))
			return
		}

		current = cal.NextWorkingDay(current, r.opts.SkipWeekends, r.opts.SkipHolidays)
		r.noteDate(current)
		if r.opts.MaxSessionsPerDay > 0 && len(group.sessions) > r.opts.MaxSessionsPerDay {
			r.warn(fmt.Sprintf("day %d has %d sessions, exceeding the maximum of %d per day",
				group.dayNumber, len(group.sessions), r.opts.MaxSessionsPerDay))
		}

		cursor := dayStart
		for _, ts := range group.sessions {
			var warnings []string
			interval := NewInterval(cursor, ts.DurationHours)
			if interval.End > dayEnd && cursor > dayStart {
				msg := fmt.Sprintf("day %d session %d ends at %s after business hours on %s; moved to the next working day",
					ts.DayNumber, ts.SessionNumber, interval.End, DateKey(current))
				warnings = append(warnings, msg)
				r.warn(msg)

				current = cal.NextWorkingDay(current.AddDate(0, 0, 1), r.opts.SkipWeekends, r.opts.SkipHolidays)
				r.noteDate(current)
				cursor = dayStart
				interval = NewInterval(cursor, ts.DurationHours)
			}
			if interval.End > dayEnd {
				msg := fmt.Sprintf("day %d session %d lasts %s hours and cannot fit the %s-%s window",
					ts.DayNumber, ts.SessionNumber, formatHours(ts.DurationHours), dayStart, dayEnd)
				warnings = append(warnings, msg)
				r.warn(msg)
			}

			r.place(ts, current, interval, warnings)
			cursor = interval.End + Clock(r.opts.MinBreakMinutes)
		}
		current = current.AddDate(0, 0, 1)
	}
}

// noteDate warns once per date when the run lands on a weekend or holiday it was told not to skip.
func (r *run) noteDate(date time.Time) {
	key := DateKey(date)
	if r.seenDates[key] {
		return
	}
	r.seenDates[key] = true
	cal := r.gen.calendar
	if !r.opts.SkipWeekends && cal.IsWeekend(date) {
		r.warn(fmt.Sprintf("sessions scheduled on weekend %s (%s)", key, date.Weekday()))
	}
	if !r.opts.SkipHolidays && cal.IsHoliday(date) {
		r.warn(fmt.Sprintf("sessions scheduled on holiday %s", key))
	}
}

func (r *run) place(ts TemplateSession, date time.Time, interval Interval, warnings []string) {
	instructors := RankInstructors(ts.SubjectID, date, interval, r.snap.Instructors, r.snap.InstructorBookings, ts.RequiredInstructorID)
	instructorID := ts.RequiredInstructorID
	if instructorID == "" && len(instructors) > 0 {
		instructorID = instructors[0].ResourceID
	}

	classroomID := ""
	classrooms := RankClassrooms(date, r.snap.Classrooms, r.snap.ClassroomBookings, ts.PreferredClassroomID)
	if len(classrooms) > 0 {
		classroomID = classrooms[0].ResourceID
	}

	var conflicts []Conflict
	conflicts = append(conflicts, FindConflicts(instructorID, ResourceInstructor, date, interval, r.snap.InstructorBookings, "")...)
	conflicts = append(conflicts, FindConflicts(classroomID, ResourceClassroom, date, interval, r.snap.ClassroomBookings, "")...)
	conflicts = append(conflicts, FindConflicts(r.opts.RoundID, ResourceTrainee, date, interval, r.snap.TraineeBookings, "")...)
	if instructorID != "" {
		if c := r.tracker.Check(instructorID, r.instructorDay(instructorID, date), interval); c != nil {
			conflicts = append(conflicts, *c)
		}
		key := instructorID + "|" + DateKey(date)
		r.placed[key] = append(r.placed[key], interval)
	}
	if conflicts == nil {
		conflicts = []Conflict{}
	}

	session := GeneratedSession{
		TemplateSessionID:    ts.ID,
		SessionDate:          date,
		StartTime:            interval.Start,
		EndTime:              interval.End,
		SubjectID:            ts.SubjectID,
		SubjectName:          ts.SubjectName,
		DayNumber:            ts.DayNumber,
		SessionNumber:        ts.SessionNumber,
		AssignedInstructorID: instructorID,
		AssignedClassroomID:  classroomID,
		Conflicts:            conflicts,
		Warnings:             warnings,
	}
	session.QualityScore = QualityScore(QualityInputs{
		HasInstructor:       instructorID != "",
		HasClassroom:        classroomID != "",
		PreferredInstructor: ts.RequiredInstructorID != "" && instructorID == ts.RequiredInstructorID,
		PreferredClassroom:  ts.PreferredClassroomID != "" && classroomID == ts.PreferredClassroomID,
		Conflicts:           len(conflicts),
		Warnings:            len(warnings),
	})

	r.result.Sessions = append(r.result.Sessions, session)
	r.result.AllConflicts = append(r.result.AllConflicts, conflicts...)
}

// instructorDay returns the instructor's booked and already placed intervals on date.
func (r *run) instructorDay(instructorID string, date time.Time) []Interval {
	var intervals []Interval
	for _, slot := range r.snap.InstructorBookings.OnDate(instructorID, date) {
		intervals = append(intervals, slot.Interval())
	}
	return append(intervals, r.placed[instructorID+"|"+DateKey(date)]...)
}

func (r *run) warn(msg string) {
	r.result.Warnings = append(r.result.Warnings, msg)
}

func (r *run) finish() Result {
	res := r.result
	res.TotalSessions = len(res.Sessions)
	for _, s := range res.Sessions {
		if s.Successful() {
			res.SuccessfulSessions++
		} else {
			res.FailedSessions++
		}
	}
	if n := len(res.Sessions); n > 0 {
		end := res.Sessions[n-1].SessionDate
		res.EstimatedEndDate = &end
	}
	res.Success = res.FailedSessions == 0 && !res.Aborted
	return res
}
