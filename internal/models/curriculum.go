package models

import "time"

// TemplateSession is one abstract session of a curriculum template.
type TemplateSession struct {
	ID                   string  `db:"id" json:"id"`
	TemplateID           string  `db:"template_id" json:"template_id"`
	DayNumber            int     `db:"day_number" json:"day_number"`
	SessionNumber        int     `db:"session_number" json:"session_number"`
	SubjectID            string  `db:"subject_id" json:"subject_id"`
	SubjectName          string  `db:"subject_name" json:"subject_name"`
	DurationHours        float64 `db:"duration_hours" json:"duration_hours"`
	RequiredInstructorID *string `db:"required_instructor_id" json:"required_instructor_id,omitempty"`
	PreferredClassroomID *string `db:"preferred_classroom_id" json:"preferred_classroom_id,omitempty"`
}

// Instructor is an active instructor qualified for at least one subject.
type Instructor struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
}

// Classroom is a bookable room.
type Classroom struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"`
}

// Booking is an already scheduled session seen from one resource. Times are HH:MM.
type Booking struct {
	ID            string    `db:"id" json:"id"`
	ResourceID    string    `db:"resource_id" json:"resource_id"`
	RoundID       string    `db:"round_id" json:"round_id"`
	DayNumber     int       `db:"day_number" json:"day_number"`
	SessionNumber int       `db:"session_number" json:"session_number"`
	SessionDate   time.Time `db:"session_date" json:"session_date"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	Label         string    `db:"label" json:"label"`
}

// Holiday is a non-working date stored in the database.
type Holiday struct {
	Date time.Time `db:"holiday_date" json:"date"`
	Name string    `db:"name" json:"name"`
}

// CurriculumSession is a persisted, dated session of a course round.
type CurriculumSession struct {
	ID                string    `db:"id" json:"id"`
	RoundID           string    `db:"round_id" json:"round_id"`
	TemplateSessionID *string   `db:"template_session_id" json:"template_session_id,omitempty"`
	SessionDate       time.Time `db:"session_date" json:"session_date"`
	StartTime         string    `db:"start_time" json:"start_time"`
	EndTime           string    `db:"end_time" json:"end_time"`
	SubjectID         string    `db:"subject_id" json:"subject_id"`
	DayNumber         int       `db:"day_number" json:"day_number"`
	SessionNumber     int       `db:"session_number" json:"session_number"`
	InstructorID      *string   `db:"instructor_id" json:"instructor_id,omitempty"`
	ClassroomID       *string   `db:"classroom_id" json:"classroom_id,omitempty"`
	QualityScore      int       `db:"quality_score" json:"quality_score"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
