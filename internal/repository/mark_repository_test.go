package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
)

func TestMarkRepositorySetUpserts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (session_id, student_id) DO UPDATE SET status = EXCLUDED.status")).
		WithArgs("sess-1", "st-1", "ABSENT", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), "sess-1", "st-1", models.MarkAbsent))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositorySetPendingDeletes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session_marks WHERE session_id = $1 AND student_id = $2")).
		WithArgs("sess-1", "st-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "sess-1", "st-1", models.MarkPending))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryListBySession(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	rows := sqlmock.NewRows([]string{"session_id", "student_id", "status", "marked_at"}).
		AddRow("sess-1", "st-1", "PHOTOGRAPHED", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM session_marks WHERE session_id = $1")).WithArgs("sess-1").WillReturnRows(rows)

	marks, err := repo.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, models.MarkPhotographed, marks[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
