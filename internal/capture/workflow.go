package capture

import (
	"errors"
	"fmt"

	"github.com/darthcode66/Snap-Self/internal/models"
)

var (
	// ErrFinished is returned when an action needs a current student but the roster is exhausted.
	ErrFinished = errors.New("capture finished")
	// ErrIndexOutOfRange is returned when navigating outside the roster.
	ErrIndexOutOfRange = errors.New("roster index out of range")
	// ErrUnknownStudent is returned when marking a student missing from the roster.
	ErrUnknownStudent = errors.New("student not in roster")
)

// Progress holds derived counters for a roster.
type Progress struct {
	Total        int `json:"total"`
	Photographed int `json:"photographed"`
	Absent       int `json:"absent"`
	Pending      int `json:"pending"`
}

// Entry is one roster position with its capture status and photo code.
type Entry struct {
	Index   int               `json:"index"`
	Code    string            `json:"code"`
	Status  models.MarkStatus `json:"status"`
	Student models.Student    `json:"student"`
}

// Workflow walks an ordered roster, tracking photographed and absent students and a cursor.
// It is not safe for concurrent use.
type Workflow struct {
	roster       []models.Student
	positions    map[string]int
	photographed map[string]struct{}
	absent       map[string]struct{}
	cursor       int
}

// New starts a workflow at the first roster entry.
func New(roster []models.Student) *Workflow {
	w := &Workflow{
		roster:       roster,
		positions:    make(map[string]int, len(roster)),
		photographed: make(map[string]struct{}),
		absent:       make(map[string]struct{}),
	}
	for i, s := range roster {
		w.positions[s.ID] = i
	}
	return w
}

// Restore rebuilds a workflow from persisted marks and a cursor. Marks for students
// no longer in the roster are ignored and the cursor is clamped to [0, len(roster)].
func Restore(roster []models.Student, marks []models.SessionMark, cursor int) *Workflow {
	w := New(roster)
	for _, m := range marks {
		if _, ok := w.positions[m.StudentID]; !ok {
			continue
		}
		w.set(m.StudentID, m.Status)
	}
	switch {
	case cursor < 0:
		w.cursor = 0
	case cursor > len(roster):
		w.cursor = len(roster)
	default:
		w.cursor = cursor
	}
	return w
}

// Cursor returns the current roster index; len(roster) means finished.
func (w *Workflow) Cursor() int { return w.cursor }

// Finished reports whether the cursor is past the last entry.
func (w *Workflow) Finished() bool { return w.cursor >= len(w.roster) }

// Current returns the student under the cursor.
func (w *Workflow) Current() (models.Student, bool) {
	if w.Finished() {
		return models.Student{}, false
	}
	return w.roster[w.cursor], true
}

// MarkPhotographed marks the current student photographed and advances.
func (w *Workflow) MarkPhotographed() error {
	return w.markCurrent(models.MarkPhotographed)
}

// MarkAbsent marks the current student absent and advances.
func (w *Workflow) MarkAbsent() error {
	return w.markCurrent(models.MarkAbsent)
}

// Mark records a status for any roster student. When that student is under the
// cursor and the status is not pending, the cursor advances.
func (w *Workflow) Mark(studentID string, status models.MarkStatus) error {
	idx, ok := w.positions[studentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStudent, studentID)
	}
	w.set(studentID, status)
	if idx == w.cursor && status != models.MarkPending {
		w.advance()
	}
	return nil
}

// Navigate moves the cursor to any roster index without changing statuses.
func (w *Workflow) Navigate(index int) error {
	if index < 0 || index >= len(w.roster) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	w.cursor = index
	return nil
}

// Status returns the capture status of a student.
func (w *Workflow) Status(studentID string) models.MarkStatus {
	if _, ok := w.photographed[studentID]; ok {
		return models.MarkPhotographed
	}
	if _, ok := w.absent[studentID]; ok {
		return models.MarkAbsent
	}
	return models.MarkPending
}

// Progress derives the counters shown while capturing.
func (w *Workflow) Progress() Progress {
	p := Progress{
		Total:        len(w.roster),
		Photographed: len(w.photographed),
		Absent:       len(w.absent),
	}
	p.Pending = p.Total - p.Photographed - p.Absent
	return p
}

// Entries lists the roster with statuses and photo codes.
func (w *Workflow) Entries(prefix string, startNumber int) []Entry {
	entries := make([]Entry, len(w.roster))
	for i, s := range w.roster {
		entries[i] = Entry{
			Index:   i,
			Code:    PhotoCode(prefix, startNumber, i),
			Status:  w.Status(s.ID),
			Student: s,
		}
	}
	return entries
}

// PauseUpdate is the session change persisted when capture is paused.
func (w *Workflow) PauseUpdate() models.SessionChanges {
	status := models.SessionStatusPaused
	cursor := w.cursor
	p := w.Progress()
	return models.SessionChanges{
		Status:              &status,
		CurrentStudentIndex: &cursor,
		Photographed:        &p.Photographed,
		Absent:              &p.Absent,
		Pending:             &p.Pending,
	}
}

// CompleteUpdate is the session change persisted when capture completes.
func (w *Workflow) CompleteUpdate() models.SessionChanges {
	status := models.SessionStatusCompleted
	p := w.Progress()
	return models.SessionChanges{
		Status:       &status,
		Photographed: &p.Photographed,
		Absent:       &p.Absent,
		Pending:      &p.Pending,
	}
}

// PhotoCode renders the file code for a roster position, e.g. "TURMA5A_007".
func PhotoCode(prefix string, startNumber, index int) string {
	return fmt.Sprintf("%s_%03d", prefix, startNumber+index)
}

func (w *Workflow) markCurrent(status models.MarkStatus) error {
	current, ok := w.Current()
	if !ok {
		return ErrFinished
	}
	return w.Mark(current.ID, status)
}

func (w *Workflow) set(studentID string, status models.MarkStatus) {
	delete(w.photographed, studentID)
	delete(w.absent, studentID)
	switch status {
	case models.MarkPhotographed:
		w.photographed[studentID] = struct{}{}
	case models.MarkAbsent:
		w.absent[studentID] = struct{}{}
	}
}

func (w *Workflow) advance() {
	for i := w.cursor + 1; i < len(w.roster); i++ {
		if w.Status(w.roster[i].ID) == models.MarkPending {
			w.cursor = i
			return
		}
	}
	w.cursor = len(w.roster)
}
