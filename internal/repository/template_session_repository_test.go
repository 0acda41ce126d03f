package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchedulerRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTemplateSessionRepositoryListByTemplate(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewTemplateSessionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "template_id", "day_number", "session_number", "subject_id", "subject_name", "duration_hours", "required_instructor_id", "preferred_classroom_id"}).
		AddRow("ts-1", "tpl-1", 1, 1, "sub-1", "Fire Safety", 3.0, "ins-1", nil).
		AddRow("ts-2", "tpl-1", 1, 2, "sub-2", "First Aid", 1.5, nil, "room-1")
	mock.ExpectQuery(regexp.QuoteMeta("FROM curriculum_template_sessions ts LEFT JOIN subjects s ON s.id = ts.subject_id")).
		WithArgs("tpl-1").
		WillReturnRows(rows)

	sessions, err := repo.ListByTemplate(context.Background(), "tpl-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Fire Safety", sessions[0].SubjectName)
	require.NotNil(t, sessions[0].RequiredInstructorID)
	assert.Equal(t, "ins-1", *sessions[0].RequiredInstructorID)
	assert.Nil(t, sessions[0].PreferredClassroomID)
	assert.Equal(t, 1.5, sessions[1].DurationHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryListActiveForSubject(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewInstructorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE isub.subject_id = $1 AND i.active = TRUE ORDER BY i.id ASC")).
		WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}).AddRow("ins-1", "Kim Minji"))

	list, err := repo.ListActiveForSubject(context.Background(), "sub-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kim Minji", list[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryListAvailable(t *testing.T) {
	db, mock, cleanup := newSchedulerRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, capacity FROM classrooms WHERE active = TRUE AND capacity >= $1 ORDER BY id ASC")).
		WithArgs(25).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity"}).AddRow("room-1", "Hall A", 40))

	rooms, err := repo.ListAvailable(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 40, rooms[0].Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
