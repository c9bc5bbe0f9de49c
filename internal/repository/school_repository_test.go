package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
)

var schoolRowColumns = []string{"id", "name", "cnpj", "phone", "email", "street", "number", "complement", "neighborhood", "city", "state", "zip_code", "photographer_id", "created_at", "updated_at"}

func TestSchoolRepositoryListByPhotographer(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(append(append([]string{}, schoolRowColumns...), "class_count")).
		AddRow("school-2", "Escola B", nil, nil, nil, nil, nil, nil, nil, "Recife", "PE", nil, "user-1", now, now, 3).
		AddRow("school-1", "Escola A", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "user-1", now.Add(-time.Hour), now, 0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM schools s LEFT JOIN classes c ON c.school_id = s.id WHERE s.photographer_id = $1 GROUP BY s.id ORDER BY s.created_at DESC")).
		WithArgs("user-1").
		WillReturnRows(rows)

	schools, err := repo.ListByPhotographer(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, "school-2", schools[0].ID)
	assert.Equal(t, 3, schools[0].ClassCount)
	require.NotNil(t, schools[0].City)
	assert.Equal(t, "Recife", *schools[0].City)
	assert.Nil(t, schools[1].City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schools s WHERE s.id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSchoolRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	args := make([]driver.Value, 15)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectExec("INSERT INTO schools").WithArgs(args...).WillReturnResult(sqlmock.NewResult(1, 1))

	school := &models.School{Name: "Escola", PhotographerID: "user-1"}
	require.NoError(t, repo.Create(context.Background(), school))
	assert.NotEmpty(t, school.ID)
	assert.False(t, school.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	args := make([]driver.Value, 13)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE schools SET name = ")).WithArgs(args...).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schools WHERE id = $1")).WithArgs("school-1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.School{ID: "school-1", Name: "Nova"}))
	require.NoError(t, repo.Delete(context.Background(), "school-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
