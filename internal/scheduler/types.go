package scheduler

import (
	"errors"
	"time"
)

// ErrEmptyTemplate marks a template without sessions.
var ErrEmptyTemplate = errors.New("curriculum template has no sessions")

// ErrInvalidWindow marks a business-hour window whose end is not after its start.
var ErrInvalidWindow = errors.New("preferred end hour must be after preferred start hour")

// ResourceKind identifies which booking dimension a resource belongs to.
type ResourceKind string

const (
	ResourceInstructor ResourceKind = "INSTRUCTOR"
	ResourceClassroom  ResourceKind = "CLASSROOM"
	ResourceTrainee    ResourceKind = "TRAINEE"
)

// ConflictKind classifies a conflict.
type ConflictKind string

const (
	ConflictInstructor ConflictKind = "INSTRUCTOR"
	ConflictClassroom  ConflictKind = "CLASSROOM"
	ConflictTrainee    ConflictKind = "TRAINEE"
	ConflictTime       ConflictKind = "TIME"
)

// Severity ranks how strongly a conflict should be treated.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Blocking reports whether the severity fails a session by default.
func (s Severity) Blocking() bool {
	return s == SeverityCritical || s == SeverityHigh
}

// Conflict is a detected double booking or policy violation.
type Conflict struct {
	Kind                ConflictKind `json:"kind"`
	Severity            Severity     `json:"severity"`
	Message             string       `json:"message"`
	AffectedResourceIDs []string     `json:"affectedResourceIds"`
}

func (c Conflict) Blocking() bool {
	return c.Severity.Blocking()
}

// HasBlocking reports whether any conflict is CRITICAL or HIGH.
func HasBlocking(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Blocking() {
			return true
		}
	}
	return false
}

// TemplateSession is one abstract slot of a curriculum template.
type TemplateSession struct {
	ID                   string  `json:"id,omitempty"`
	DayNumber            int     `json:"dayNumber"`
	SessionNumber        int     `json:"sessionNumber"`
	SubjectID            string  `json:"subjectId"`
	SubjectName          string  `json:"subjectName,omitempty"`
	DurationHours        float64 `json:"durationHours"`
	RequiredInstructorID string  `json:"requiredInstructorId,omitempty"`
	PreferredClassroomID string  `json:"preferredClassroomId,omitempty"`
}

// GeneratedSession is a dated, time-boxed session produced from a TemplateSession.
type GeneratedSession struct {
	TemplateSessionID    string     `json:"templateSessionId,omitempty"`
	SessionDate          time.Time  `json:"sessionDate"`
	StartTime            Clock      `json:"startTime"`
	EndTime              Clock      `json:"endTime"`
	SubjectID            string     `json:"subjectId"`
	SubjectName          string     `json:"subjectName,omitempty"`
	DayNumber            int        `json:"dayNumber"`
	SessionNumber        int        `json:"sessionNumber"`
	AssignedInstructorID string     `json:"assignedInstructorId,omitempty"`
	AssignedClassroomID  string     `json:"assignedClassroomId,omitempty"`
	Conflicts            []Conflict `json:"conflicts"`
	Warnings             []string   `json:"warnings,omitempty"`
	QualityScore         int        `json:"qualityScore"`
}

// Interval returns the session's time span.
func (s GeneratedSession) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

// Successful reports whether the session carries no CRITICAL or HIGH conflicts.
func (s GeneratedSession) Successful() bool {
	return !HasBlocking(s.Conflicts)
}

// Instructor is a directory entry eligible to teach a subject.
type Instructor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Classroom is a directory entry for a bookable room.
type Classroom struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// InstructorCandidate is a ranked instructor for one session.
type InstructorCandidate struct {
	ResourceID string `json:"resourceId"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
}

// ClassroomCandidate is a ranked classroom for one session.
type ClassroomCandidate struct {
	ResourceID string `json:"resourceId"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	Score      int    `json:"score"`
}

// Options configure one generation run.
type Options struct {
	StartDate          string
	RoundID            string
	SkipWeekends       bool
	SkipHolidays       bool
	PreferredStartHour float64
	PreferredEndHour   float64
	MaxSessionsPerDay  int
	MinBreakMinutes    int
	MaxContinuousHours float64
}

func (o Options) withDefaults() Options {
	if o.PreferredStartHour == 0 && o.PreferredEndHour == 0 {
		o.PreferredStartHour = 9
		o.PreferredEndHour = 18
	}
	if o.MaxContinuousHours <= 0 {
		o.MaxContinuousHours = DefaultMaxContinuousHours
	}
	if o.MinBreakMinutes < 0 {
		o.MinBreakMinutes = 0
	}
	return o
}

// Result summarises a generation run.
type Result struct {
	Success            bool               `json:"success"`
	Sessions           []GeneratedSession `json:"sessions"`
	TotalSessions      int                `json:"totalSessions"`
	SuccessfulSessions int                `json:"successfulSessions"`
	FailedSessions     int                `json:"failedSessions"`
	AllConflicts       []Conflict         `json:"allConflicts"`
	Warnings           []string           `json:"warnings"`
	EstimatedEndDate   *time.Time         `json:"estimatedEndDate,omitempty"`
	Aborted            bool               `json:"aborted,omitempty"`
	Error              string             `json:"error,omitempty"`
}
