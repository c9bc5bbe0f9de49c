package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
)

func TestOwnershipRepositoryWalksChain(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOwnershipRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students st JOIN classes c ON c.id = st.class_id JOIN schools s ON s.id = c.school_id WHERE st.id = $1")).
		WithArgs("st-1").
		WillReturnRows(sqlmock.NewRows([]string{"photographer_id"}).AddRow("user-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT photographer_id FROM photo_sessions WHERE id = $1")).
		WithArgs("sess-404").
		WillReturnError(sql.ErrNoRows)

	owner, err := repo.OwnerOf(context.Background(), models.ResourceStudent, "st-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	_, err = repo.OwnerOf(context.Background(), models.ResourceSession, "sess-404")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.OwnerOf(context.Background(), models.ResourceKind("photo"), "x")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
