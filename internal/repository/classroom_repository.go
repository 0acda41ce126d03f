package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/training-scheduler-api/internal/models"
)

// ClassroomRepository reads bookable classrooms.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository constructs the repository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// ListAvailable returns active classrooms seating at least minCapacity trainees.
func (r *ClassroomRepository) ListAvailable(ctx context.Context, minCapacity int) ([]models.Classroom, error) {
	const query = `SELECT id, name, capacity FROM classrooms WHERE active = TRUE AND capacity >= $1 ORDER BY id ASC`
	var rooms []models.Classroom
	if err := r.db.SelectContext(ctx, &rooms, query, minCapacity); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return rooms, nil
}
