package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/training-scheduler-api/internal/models"
)

// TemplateSessionRepository reads curriculum template sessions.
type TemplateSessionRepository struct {
	db *sqlx.DB
}

// NewTemplateSessionRepository constructs the repository.
func NewTemplateSessionRepository(db *sqlx.DB) *TemplateSessionRepository {
	return &TemplateSessionRepository{db: db}
}

// ListByTemplate returns the sessions of a template ordered by day and session number.
func (r *TemplateSessionRepository) ListByTemplate(ctx context.Context, templateID string) ([]models.TemplateSession, error) {
	const query = `SELECT ts.id, ts.template_id, ts.day_number, ts.session_number, ts.subject_id, COALESCE(s.name, '') AS subject_name, ts.duration_hours, ts.required_instructor_id, ts.preferred_classroom_id
FROM curriculum_template_sessions ts LEFT JOIN subjects s ON s.id = ts.subject_id
WHERE ts.template_id = $1 ORDER BY ts.day_number ASC, ts.session_number ASC`
	var sessions []models.TemplateSession
	if err := r.db.SelectContext(ctx, &sessions, query, templateID); err != nil {
		return nil, fmt.Errorf("list template sessions: %w", err)
	}
	return sessions, nil
}
