package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/repository"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

var owner = &models.Identity{UserID: "user-1", Email: "foto@example.com", Name: "Ana"}

type fakeGuard struct {
	missing map[string]bool
	foreign map[string]bool
	calls   []string
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{missing: map[string]bool{}, foreign: map[string]bool{}}
}

func (g *fakeGuard) Authorize(_ context.Context, kind models.ResourceKind, id string, identity *models.Identity) error {
	g.calls = append(g.calls, fmt.Sprintf("%s:%s", kind, id))
	switch {
	case identity == nil:
		return appErrors.ErrUnauthorized
	case g.missing[id]:
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", kind))
	case g.foreign[id]:
		return appErrors.Clone(appErrors.ErrForbidden, "forbidden")
	}
	return nil
}

type fakeCounts struct {
	invalidated []string
}

func (f *fakeCounts) Invalidate(_ context.Context, photographerID string) {
	f.invalidated = append(f.invalidated, photographerID)
}

type fakeUsers struct {
	ensured []models.User
	err     error
}

func (f *fakeUsers) Ensure(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.ensured = append(f.ensured, *user)
	return nil
}

type fakeSchoolRepo struct {
	schools map[string]*models.School
	created []*models.School
	updated []*models.School
	deleted []string
}

func newFakeSchoolRepo(schools ...models.School) *fakeSchoolRepo {
	repo := &fakeSchoolRepo{schools: map[string]*models.School{}}
	for i := range schools {
		s := schools[i]
		repo.schools[s.ID] = &s
	}
	return repo
}

func (f *fakeSchoolRepo) ListByPhotographer(_ context.Context, photographerID string) ([]models.SchoolSummary, error) {
	var out []models.SchoolSummary
	for _, s := range f.schools {
		if s.PhotographerID == photographerID {
			out = append(out, models.SchoolSummary{School: *s})
		}
	}
	return out, nil
}

func (f *fakeSchoolRepo) FindByID(_ context.Context, id string) (*models.School, error) {
	s, ok := f.schools[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSchoolRepo) Create(_ context.Context, school *models.School) error {
	school.ID = fmt.Sprintf("school-%d", len(f.created)+1)
	f.created = append(f.created, school)
	f.schools[school.ID] = school
	return nil
}

func (f *fakeSchoolRepo) Update(_ context.Context, school *models.School) error {
	f.updated = append(f.updated, school)
	return nil
}

func (f *fakeSchoolRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeClassRepo struct {
	classes   map[string]*models.Class
	exists    bool
	createErr error
	created   []*models.Class
}

func newFakeClassRepo(classes ...models.Class) *fakeClassRepo {
	repo := &fakeClassRepo{classes: map[string]*models.Class{}}
	for i := range classes {
		c := classes[i]
		repo.classes[c.ID] = &c
	}
	return repo
}

func (f *fakeClassRepo) ListBySchool(_ context.Context, schoolID string) ([]models.ClassSummary, error) {
	var out []models.ClassSummary
	for _, c := range f.classes {
		if c.SchoolID == schoolID {
			out = append(out, models.ClassSummary{Class: *c})
		}
	}
	return out, nil
}

func (f *fakeClassRepo) FindByID(_ context.Context, id string) (*models.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClassRepo) ExistsByIdentity(context.Context, repository.ClassIdentity) (bool, error) {
	return f.exists, nil
}

func (f *fakeClassRepo) Create(_ context.Context, class *models.Class) error {
	if f.createErr != nil {
		return f.createErr
	}
	class.ID = "class-new"
	f.created = append(f.created, class)
	return nil
}

func (f *fakeClassRepo) Delete(context.Context, string) error { return nil }

type fakeStudentRepo struct {
	byClass  map[string][]models.Student
	byID     map[string]models.Student
	created  []models.Student
	batches  [][]models.Student
	deleted  []string
	batchErr error
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{byClass: map[string][]models.Student{}, byID: map[string]models.Student{}}
	for _, s := range students {
		repo.byClass[s.ClassID] = append(repo.byClass[s.ClassID], s)
		repo.byID[s.ID] = s
	}
	return repo
}

func (f *fakeStudentRepo) ListByClass(_ context.Context, classID string) ([]models.Student, error) {
	return f.byClass[classID], nil
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id string) (*models.Student, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = fmt.Sprintf("student-%d", len(f.created)+1)
	f.created = append(f.created, *student)
	return nil
}

func (f *fakeStudentRepo) CreateBatch(_ context.Context, students []models.Student) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for i := range students {
		students[i].ID = fmt.Sprintf("student-%d", i+1)
	}
	f.batches = append(f.batches, students)
	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.PhotoSession
	created  []*models.PhotoSession
	updates  []models.SessionChanges
	filters  []models.SessionFilter
}

func newFakeSessionRepo(sessions ...models.PhotoSession) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: map[string]*models.PhotoSession{}}
	for i := range sessions {
		s := sessions[i]
		repo.sessions[s.ID] = &s
	}
	return repo
}

func (f *fakeSessionRepo) List(_ context.Context, filter models.SessionFilter) ([]models.SessionListItem, error) {
	f.filters = append(f.filters, filter)
	var out []models.SessionListItem
	for _, s := range f.sessions {
		if filter.ClassID == "" || s.ClassID == filter.ClassID {
			out = append(out, models.SessionListItem{PhotoSession: *s})
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id string) (*models.PhotoSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.PhotoSession) error {
	session.ID = "session-new"
	f.created = append(f.created, session)
	f.sessions[session.ID] = session
	return nil
}

// Update mirrors the repository's sparse UPDATE on the in-memory row.
func (f *fakeSessionRepo) Update(_ context.Context, id string, changes models.SessionChanges, now time.Time) error {
	f.updates = append(f.updates, changes)
	s := f.sessions[id]
	s.UpdatedAt = now
	if changes.Status != nil {
		s.Status = *changes.Status
		if *changes.Status == models.SessionStatusCompleted {
			completed := now
			s.CompletedAt = &completed
		}
	}
	if changes.CurrentStudentIndex != nil {
		s.CurrentStudentIndex = *changes.CurrentStudentIndex
	}
	if changes.Photographed != nil {
		s.Photographed = *changes.Photographed
	}
	if changes.Absent != nil {
		s.Absent = *changes.Absent
	}
	if changes.Pending != nil {
		s.Pending = *changes.Pending
	}
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

type fakePhotoRepo struct {
	photos    []models.Photo
	createErr error
}

func (f *fakePhotoRepo) ListBySession(_ context.Context, sessionID string) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range f.photos {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) CreateWithMark(_ context.Context, photo *models.Photo) error {
	if f.createErr != nil {
		return f.createErr
	}
	photo.ID = "photo-1"
	f.photos = append(f.photos, *photo)
	return nil
}

type fakeMarkRepo struct {
	marks []models.SessionMark
	sets  []models.SessionMark
}

func (f *fakeMarkRepo) ListBySession(context.Context, string) ([]models.SessionMark, error) {
	return f.marks, nil
}

func (f *fakeMarkRepo) Set(_ context.Context, sessionID, studentID string, status models.MarkStatus) error {
	mark := models.SessionMark{SessionID: sessionID, StudentID: studentID, Status: status}
	f.sets = append(f.sets, mark)
	for i := range f.marks {
		if f.marks[i].StudentID == studentID {
			f.marks[i] = mark
			return nil
		}
	}
	f.marks = append(f.marks, mark)
	return nil
}

type fakePhotoStore struct {
	puts    map[string][]byte
	removed []string
}

func (f *fakePhotoStore) Put(_ context.Context, key string, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[key] = body
	return "/api/photos/placeholder/" + key, nil
}

func (f *fakePhotoStore) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func rosterStudent(id, name, classID string) models.Student {
	return models.Student{ID: id, Name: name, SortName: name, ClassID: classID}
}
