package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/training-scheduler-api/internal/models"
)

// CurriculumSessionRepository persists generated sessions of a course round.
type CurriculumSessionRepository struct {
	db *sqlx.DB
}

// NewCurriculumSessionRepository constructs the repository.
func NewCurriculumSessionRepository(db *sqlx.DB) *CurriculumSessionRepository {
	return &CurriculumSessionRepository{db: db}
}

// Upsert stores a session. A round holds one row per template slot (day and session number); re-saving the
// slot moves the existing row, date included.
func (r *CurriculumSessionRepository) Upsert(ctx context.Context, session *models.CurriculumSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	const query = `INSERT INTO curriculum_sessions (id, round_id, template_session_id, session_date, start_time, end_time, subject_id, day_number, session_number, instructor_id, classroom_id, quality_score, created_at, updated_at)
		VALUES (:id, :round_id, :template_session_id, :session_date, :start_time, :end_time, :subject_id, :day_number, :session_number, :instructor_id, :classroom_id, :quality_score, :created_at, :updated_at)
		ON CONFLICT (round_id, day_number, session_number) DO UPDATE
		SET template_session_id = EXCLUDED.template_session_id,
		    session_date = EXCLUDED.session_date,
		    start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    subject_id = EXCLUDED.subject_id,
		    instructor_id = EXCLUDED.instructor_id,
		    classroom_id = EXCLUDED.classroom_id,
		    quality_score = EXCLUDED.quality_score,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("upsert curriculum session: %w", err)
	}
	return nil
}

// ListByRound returns the persisted sessions of a round in schedule order.
func (r *CurriculumSessionRepository) ListByRound(ctx context.Context, roundID string) ([]models.CurriculumSession, error) {
	const query = `SELECT id, round_id, template_session_id, session_date, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time, subject_id, day_number, session_number, instructor_id, classroom_id, quality_score, created_at, updated_at
FROM curriculum_sessions WHERE round_id = $1 ORDER BY session_date ASC, start_time ASC`
	var sessions []models.CurriculumSession
	if err := r.db.SelectContext(ctx, &sessions, query, roundID); err != nil {
		return nil, fmt.Errorf("list curriculum sessions: %w", err)
	}
	return sessions, nil
}
