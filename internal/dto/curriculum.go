package dto

import (
	"time"

	"github.com/noah-isme/training-scheduler-api/internal/scheduler"
)

// GenerateCurriculumRequest expands a curriculum template into a dated preview for one course round.
// Nil option fields fall back to the configured scheduler defaults.
type GenerateCurriculumRequest struct {
	TemplateID           string   `json:"templateId" validate:"required"`
	RoundID              string   `json:"roundId" validate:"required"`
	StartDate            string   `json:"startDate" validate:"required"`
	SkipWeekends         *bool    `json:"skipWeekends,omitempty"`
	SkipHolidays         *bool    `json:"skipHolidays,omitempty"`
	PreferredStartHour   *float64 `json:"preferredStartHour,omitempty" validate:"omitempty,min=0,max=24"`
	PreferredEndHour     *float64 `json:"preferredEndHour,omitempty" validate:"omitempty,min=0,max=24"`
	MaxSessionsPerDay    *int     `json:"maxSessionsPerDay,omitempty" validate:"omitempty,min=1,max=24"`
	MinBreakMinutes      *int     `json:"minBreakMinutes,omitempty" validate:"omitempty,min=0,max=240"`
	MaxContinuousHours   *float64 `json:"maxContinuousHours,omitempty" validate:"omitempty,gt=0,max=24"`
	MinClassroomCapacity int      `json:"minClassroomCapacity" validate:"min=0"`
}

// GenerateCurriculumResponse wraps a generation result. ProposalID is empty when generation failed outright.
type GenerateCurriculumResponse struct {
	Mode       string           `json:"mode"`
	ProposalID string           `json:"proposalId,omitempty"`
	ExpiresAt  *time.Time       `json:"expiresAt,omitempty"`
	Result     scheduler.Result `json:"result"`
}

// PersistCurriculumRequest saves either a stored proposal or an inline list of sessions.
type PersistCurriculumRequest struct {
	ProposalID string                       `json:"proposalId"`
	RoundID    string                       `json:"roundId" validate:"required_without=ProposalID"`
	Sessions   []scheduler.GeneratedSession `json:"sessions" validate:"required_without=ProposalID"`
	Override   bool                         `json:"override"`
}

// PersistCurriculumResponse reports how many sessions were stored. Errors holds one entry per failed session.
type PersistCurriculumResponse struct {
	RoundID    string   `json:"roundId"`
	SavedCount int      `json:"savedCount"`
	Total      int      `json:"total"`
	Errors     []string `json:"errors"`
}

// CheckSessionRequest revalidates one session against current bookings.
// SessionID, when set, excludes the session's own booking from the check.
type CheckSessionRequest struct {
	SessionID    string `json:"sessionId"`
	RoundID      string `json:"roundId"`
	SessionDate  string `json:"sessionDate" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	InstructorID string `json:"instructorId"`
	ClassroomID  string `json:"classroomId"`
}

// CheckSessionResponse lists the conflicts found. Blocking is true when any of them is CRITICAL or HIGH.
type CheckSessionResponse struct {
	Conflicts []scheduler.Conflict `json:"conflicts"`
	Blocking  bool                 `json:"blocking"`
}

// CandidatesRequest asks for ranked instructors and classrooms for a prospective slot.
type CandidatesRequest struct {
	SubjectID             string  `json:"subjectId" validate:"required"`
	SessionDate           string  `json:"sessionDate" validate:"required"`
	StartTime             string  `json:"startTime" validate:"required"`
	DurationHours         float64 `json:"durationHours" validate:"required,gt=0,max=24"`
	PreferredInstructorID string  `json:"preferredInstructorId"`
	PreferredClassroomID  string  `json:"preferredClassroomId"`
	MinClassroomCapacity  int     `json:"minClassroomCapacity" validate:"min=0"`
}

// CandidatesResponse returns candidates best first.
type CandidatesResponse struct {
	Instructors []scheduler.InstructorCandidate `json:"instructors"`
	Classrooms  []scheduler.ClassroomCandidate  `json:"classrooms"`
}
