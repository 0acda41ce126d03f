package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/training-scheduler-api/internal/models"
	"github.com/noah-isme/training-scheduler-api/internal/scheduler"
)

// BookingRepository exposes scheduled curriculum sessions as bookings of one resource dimension.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs the repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func bookingColumn(kind scheduler.ResourceKind) (string, error) {
	switch kind {
	case scheduler.ResourceInstructor:
		return "instructor_id", nil
	case scheduler.ResourceClassroom:
		return "classroom_id", nil
	case scheduler.ResourceTrainee:
		return "round_id", nil
	default:
		return "", fmt.Errorf("unknown resource kind %q", kind)
	}
}

const bookingSelect = `SELECT cs.id, cs.%[1]s AS resource_id, cs.round_id, cs.day_number, cs.session_number, cs.session_date, to_char(cs.start_time, 'HH24:MI') AS start_time, to_char(cs.end_time, 'HH24:MI') AS end_time, COALESCE(s.name, '') AS label
FROM curriculum_sessions cs LEFT JOIN subjects s ON s.id = cs.subject_id
WHERE %[2]s AND cs.session_date BETWEEN $2 AND $3
ORDER BY cs.session_date ASC, cs.start_time ASC`

// ListBookings returns the sessions booked for one resource within the inclusive date range.
func (r *BookingRepository) ListBookings(ctx context.Context, kind scheduler.ResourceKind, resourceID string, from, to time.Time) ([]models.Booking, error) {
	column, err := bookingColumn(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(bookingSelect, column, "cs."+column+" = $1")
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, resourceID, from, to); err != nil {
		return nil, fmt.Errorf("list %s bookings: %w", kind, err)
	}
	return bookings, nil
}

// ListBookingsForResources batches ListBookings over several resources of the same kind.
func (r *BookingRepository) ListBookingsForResources(ctx context.Context, kind scheduler.ResourceKind, resourceIDs []string, from, to time.Time) ([]models.Booking, error) {
	if len(resourceIDs) == 0 {
		return nil, nil
	}
	column, err := bookingColumn(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(bookingSelect, column, "cs."+column+" = ANY($1)")
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, pq.Array(resourceIDs), from, to); err != nil {
		return nil, fmt.Errorf("list %s bookings: %w", kind, err)
	}
	return bookings, nil
}
