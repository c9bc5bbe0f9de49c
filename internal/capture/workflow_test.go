package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
)

func threeStudents() []models.Student {
	return []models.Student{
		{ID: "amy", Name: "Amy"},
		{ID: "bob", Name: "Bob"},
		{ID: "carl", Name: "Carl"},
	}
}

func TestPhotographedThenAbsentAdvancesToThird(t *testing.T) {
	w := New(threeStudents())

	require.NoError(t, w.MarkPhotographed())
	require.NoError(t, w.MarkAbsent())

	current, ok := w.Current()
	require.True(t, ok)
	assert.Equal(t, "carl", current.ID)
	assert.Equal(t, 2, w.Cursor())
	assert.Equal(t, Progress{Total: 3, Photographed: 1, Absent: 1, Pending: 1}, w.Progress())
	assert.Equal(t, models.MarkPending, w.Status("carl"))
}

func TestAdvanceSkipsHandledStudentsAndFinishes(t *testing.T) {
	w := New(threeStudents())
	require.NoError(t, w.Navigate(1))
	require.NoError(t, w.MarkAbsent())
	assert.Equal(t, 2, w.Cursor())

	require.NoError(t, w.MarkPhotographed())
	assert.True(t, w.Finished(), "advance never wraps to earlier pending entries")
	assert.Equal(t, 3, w.Cursor())

	_, ok := w.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, w.MarkPhotographed(), ErrFinished)
}

func TestNavigateDoesNotChangeStatuses(t *testing.T) {
	w := New(threeStudents())
	require.NoError(t, w.MarkPhotographed())

	require.NoError(t, w.Navigate(0))
	assert.Equal(t, 0, w.Cursor())
	assert.Equal(t, models.MarkPhotographed, w.Status("amy"))

	assert.ErrorIs(t, w.Navigate(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, w.Navigate(-1), ErrIndexOutOfRange)
}

func TestMarkOtherStudentKeepsCursor(t *testing.T) {
	w := New(threeStudents())
	require.NoError(t, w.Mark("carl", models.MarkAbsent))
	assert.Equal(t, 0, w.Cursor())

	require.NoError(t, w.MarkPhotographed())
	assert.Equal(t, 1, w.Cursor())

	require.NoError(t, w.MarkPhotographed())
	assert.True(t, w.Finished())

	assert.ErrorIs(t, w.Mark("zoe", models.MarkAbsent), ErrUnknownStudent)
}

func TestRestoreFromMarks(t *testing.T) {
	marks := []models.SessionMark{
		{StudentID: "amy", Status: models.MarkPhotographed},
		{StudentID: "bob", Status: models.MarkAbsent},
		{StudentID: "gone", Status: models.MarkAbsent},
	}
	w := Restore(threeStudents(), marks, 7)

	assert.Equal(t, 3, w.Cursor())
	assert.Equal(t, Progress{Total: 3, Photographed: 1, Absent: 1, Pending: 1}, w.Progress())
}

func TestPauseAndCompleteUpdates(t *testing.T) {
	w := New(threeStudents())
	require.NoError(t, w.MarkPhotographed())

	pause := w.PauseUpdate()
	require.NotNil(t, pause.Status)
	assert.Equal(t, models.SessionStatusPaused, *pause.Status)
	assert.Equal(t, 1, *pause.CurrentStudentIndex)
	assert.Equal(t, 1, *pause.Photographed)
	assert.Equal(t, 0, *pause.Absent)
	assert.Equal(t, 2, *pause.Pending)

	complete := w.CompleteUpdate()
	assert.Equal(t, models.SessionStatusCompleted, *complete.Status)
	assert.Nil(t, complete.CurrentStudentIndex)
	assert.Equal(t, 2, *complete.Pending)
}

func TestEntriesCarryPhotoCodes(t *testing.T) {
	w := New(threeStudents())
	require.NoError(t, w.MarkAbsent())

	entries := w.Entries("TURMA5A", 7)
	require.Len(t, entries, 3)
	assert.Equal(t, "TURMA5A_007", entries[0].Code)
	assert.Equal(t, models.MarkAbsent, entries[0].Status)
	assert.Equal(t, "TURMA5A_009", entries[2].Code)
	assert.Equal(t, "X_1000", PhotoCode("X", 1000, 0))
}

func TestSummarize(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	completed := created.Add(42*time.Minute + 40*time.Second)

	s := Summarize(models.PhotoSession{
		ID:            "s1",
		Status:        models.SessionStatusCompleted,
		TotalStudents: 3,
		Photographed:  1,
		Absent:        1,
		Pending:       1,
		CreatedAt:     created,
		CompletedAt:   &completed,
	})

	assert.Equal(t, 67, s.CompletionPercent)
	assert.Equal(t, 33, s.AbsentPercent)
	require.NotNil(t, s.DurationMinutes)
	assert.Equal(t, 43, *s.DurationMinutes)

	empty := Summarize(models.PhotoSession{ID: "s2", Status: models.SessionStatusInProgress})
	assert.Equal(t, 0, empty.CompletionPercent)
	assert.Nil(t, empty.DurationMinutes)
}
