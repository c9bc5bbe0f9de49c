package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
)

func studentArgs(name, sortName string) []driver.Value {
	return []driver.Value{sqlmock.AnyArg(), name, sortName, sqlmock.AnyArg(), false, false, "class-1", sqlmock.AnyArg(), sqlmock.AnyArg()}
}

func TestStudentRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "sort_name", "registration_number", "has_authorization", "has_paid", "class_id", "created_at", "updated_at"}).
		AddRow("st-1", "Amy", "Amy", nil, false, false, "class-1", now, now).
		AddRow("st-2", "Bob Lee", "Lee, Bob", "R-2", true, true, "class-1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE class_id = $1 ORDER BY sort_name ASC, created_at ASC")).
		WithArgs("class-1").
		WillReturnRows(rows)

	students, err := repo.ListByClass(context.Background(), "class-1")
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "", students[0].Registration())
	assert.Equal(t, "R-2", students[1].Registration())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(studentArgs("João Silva", "Silva, João")...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{Name: "João Silva", SortName: "Silva, João", ClassID: "class-1"}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateBatchCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").WithArgs(studentArgs("João Silva", "Silva, João")...).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO students").WithArgs(studentArgs("Maria", "Maria")...).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	students := []models.Student{
		{Name: "João Silva", SortName: "Silva, João", ClassID: "class-1"},
		{Name: "Maria", SortName: "Maria", ClassID: "class-1"},
	}
	require.NoError(t, repo.CreateBatch(context.Background(), students))
	assert.NotEmpty(t, students[0].ID)
	assert.NotEmpty(t, students[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateBatchRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").WithArgs(studentArgs("Amy", "Amy")...).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO students").WithArgs(studentArgs("Bob", "Bob")...).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.CreateBatch(context.Background(), []models.Student{
		{Name: "Amy", SortName: "Amy", ClassID: "class-1"},
		{Name: "Bob", SortName: "Bob", ClassID: "class-1"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
