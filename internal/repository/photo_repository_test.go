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

	"github.com/darthcode66/Snap-Self/internal/models"
)

func TestPhotoRepositoryListBySessionAscending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotoRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "student_id", "user_id", "filename", "size", "format", "url", "width", "height", "created_at"}).
		AddRow("p1", "sess-1", "st-1", "user-1", "a.png", 10, "png", "/p/a", 0, 0, now).
		AddRow("p2", "sess-1", "st-2", "user-1", "b.jpg", 20, "jpeg", "/p/b", 0, 0, now.Add(time.Second))
	mock.ExpectQuery(regexp.QuoteMeta("FROM photos WHERE session_id = $1 ORDER BY created_at ASC")).
		WithArgs("sess-1").
		WillReturnRows(rows)

	photos, err := repo.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "p1", photos[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepositoryCreateWithMark(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO photos").
		WithArgs(sqlmock.AnyArg(), "sess-1", "st-1", "user-1", "a.png", 3, "png", "/p/a", 0, 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_marks")).
		WithArgs("sess-1", "st-1", "PHOTOGRAPHED", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	photo := &models.Photo{SessionID: "sess-1", StudentID: "st-1", UserID: "user-1", Filename: "a.png", Size: 3, Format: "png", URL: "/p/a"}
	require.NoError(t, repo.CreateWithMark(context.Background(), photo))
	assert.NotEmpty(t, photo.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepositoryCreateWithMarkRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO photos").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreateWithMark(context.Background(), &models.Photo{SessionID: "sess-1", StudentID: "st-1"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
