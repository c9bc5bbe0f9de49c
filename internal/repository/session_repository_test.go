package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
)

var sessionRowColumns = []string{"id", "class_id", "photographer_id", "photo_prefix", "start_number", "sort_order", "total_students", "photographed", "absent", "pending", "current_student_index", "status", "created_at", "updated_at", "completed_at"}

func TestSessionRepositoryListFiltersByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(append(append([]string{}, sessionRowColumns...), "class_name", "school_id", "school_name")).
		AddRow("sess-1", "class-1", "user-1", "T5A", 1, "ALPHABETICAL", 3, 0, 0, 3, 0, "IN_PROGRESS", now, now, nil, "5º Ano A", "school-1", "Escola")
	mock.ExpectQuery(regexp.QuoteMeta("FROM photo_sessions ps JOIN classes c ON c.id = ps.class_id JOIN schools s ON s.id = c.school_id WHERE ps.photographer_id = $1 AND ps.class_id = $2 ORDER BY ps.created_at DESC")).
		WithArgs("user-1", "class-1").
		WillReturnRows(rows)

	sessions, err := repo.List(context.Background(), models.SessionFilter{PhotographerID: "user-1", ClassID: "class-1"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Escola", sessions[0].SchoolName)
	assert.Equal(t, models.SessionStatusInProgress, sessions[0].Status)
	assert.Nil(t, sessions[0].CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListWithoutClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ps.photographer_id = $1 ORDER BY ps.created_at DESC")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(sessionRowColumns))

	sessions, err := repo.List(context.Background(), models.SessionFilter{PhotographerID: "user-1"})
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryUpdateOnlyPresentFields(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	zero := 0
	mock.ExpectExec(regexp.QuoteMeta("UPDATE photo_sessions SET updated_at = $1, absent = $2 WHERE id = $3")).
		WithArgs(now, 0, "sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), "sess-1", models.SessionChanges{Absent: &zero}, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryUpdateCompletedStampsCompletion(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	status := models.SessionStatusCompleted
	photographed, absent, pending := 2, 1, 0
	mock.ExpectExec(regexp.QuoteMeta("UPDATE photo_sessions SET updated_at = $1, status = $2, completed_at = $3, photographed = $4, absent = $5, pending = $6 WHERE id = $7")).
		WithArgs(now, "COMPLETED", now, 2, 1, 0, "sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "sess-1", models.SessionChanges{
		Status:       &status,
		Photographed: &photographed,
		Absent:       &absent,
		Pending:      &pending,
	}, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	args := make([]driver.Value, 15)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectExec("INSERT INTO photo_sessions").WithArgs(args...).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM photo_sessions WHERE id = $1")).WithArgs(sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))

	session := &models.PhotoSession{ClassID: "class-1", PhotographerID: "user-1", PhotoPrefix: "T5A", StartNumber: 1}
	require.NoError(t, repo.Create(context.Background(), session))
	require.NotEmpty(t, session.ID)
	require.NoError(t, repo.Delete(context.Background(), session.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
