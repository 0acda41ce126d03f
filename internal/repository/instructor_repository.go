package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/training-scheduler-api/internal/models"
)

// InstructorRepository reads instructors and their subject qualifications.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs the repository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// ListActiveForSubject returns active instructors qualified to teach the subject.
func (r *InstructorRepository) ListActiveForSubject(ctx context.Context, subjectID string) ([]models.Instructor, error) {
	const query = `SELECT i.id, i.full_name FROM instructors i
JOIN instructor_subjects isub ON isub.instructor_id = i.id
WHERE isub.subject_id = $1 AND i.active = TRUE ORDER BY i.id ASC`
	var instructors []models.Instructor
	if err := r.db.SelectContext(ctx, &instructors, query, subjectID); err != nil {
		return nil, fmt.Errorf("list instructors for subject %s: %w", subjectID, err)
	}
	return instructors, nil
}
