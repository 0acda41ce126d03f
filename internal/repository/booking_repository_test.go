package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-scheduler-api/internal/scheduler"
)

var bookingColumns = []string{"id", "resource_id", "round_id", "day_number", "session_number", "session_date", "start_time", "end_time", "label"}

func TestBookingRepositoryListBookingsByKind(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)
	day := from.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT cs.id, cs.instructor_id AS resource_id")).
		WithArgs("ins-1", from, to).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow("cs-1", "ins-1", "round-4", 2, 1, day, "09:00", "12:00", "Fire Safety"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE cs.round_id = $1 AND cs.session_date BETWEEN $2 AND $3")).
		WithArgs("round-1", from, to).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	bookings, err := repo.ListBookings(context.Background(), scheduler.ResourceInstructor, "ins-1", from, to)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "09:00", bookings[0].StartTime)
	assert.Equal(t, "Fire Safety", bookings[0].Label)
	assert.Equal(t, "round-4", bookings[0].RoundID)
	assert.Equal(t, 2, bookings[0].DayNumber)

	bookings, err = repo.ListBookings(context.Background(), scheduler.ResourceTrainee, "round-1", from, to)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListBookingsForResources(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE cs.classroom_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg(), from, to).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow("cs-1", "room-1", "round-1", 1, 1, from, "09:00", "10:00", "").
			AddRow("cs-2", "room-2", "round-2", 1, 3, from, "13:00", "15:00", "First Aid"))

	bookings, err := repo.ListBookingsForResources(context.Background(), scheduler.ResourceClassroom, []string{"room-1", "room-2"}, from, to)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	none, err := repo.ListBookingsForResources(context.Background(), scheduler.ResourceClassroom, nil, from, to)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryErrors(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)
	now := time.Now()

	_, err := repo.ListBookings(context.Background(), scheduler.ResourceKind("ROOMMATE"), "x", now, now)
	assert.ErrorContains(t, err, "unknown resource kind")

	mock.ExpectQuery("FROM curriculum_sessions").WillReturnError(errors.New("boom"))
	_, err = repo.ListBookings(context.Background(), scheduler.ResourceClassroom, "room-1", now, now)
	assert.ErrorContains(t, err, "list CLASSROOM bookings: boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}
