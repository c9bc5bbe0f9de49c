package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darthcode66/Snap-Self/internal/dto"
	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type fakeClassSrv struct {
	schoolID string
	err      error
}

func (f *fakeClassSrv) ListBySchool(_ context.Context, _ *models.Identity, schoolID string) ([]models.ClassSummary, error) {
	f.schoolID = schoolID
	return nil, f.err
}

func (f *fakeClassSrv) Get(_ context.Context, _ *models.Identity, id string) (*models.ClassDetail, error) {
	return &models.ClassDetail{Class: models.Class{ID: id}}, f.err
}

func (f *fakeClassSrv) Create(_ context.Context, _ *models.Identity, req dto.CreateClassRequest) (*models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Class{ID: "c-new", SchoolID: req.SchoolID}, nil
}

func (f *fakeClassSrv) Delete(context.Context, *models.Identity, string) error { return f.err }

func TestClassHandlerListPassesSchool(t *testing.T) {
	srv := &fakeClassSrv{}
	h := NewClassHandler(srv)

	rec, _ := serve(t, photographer, http.MethodGet, "/classes", "/classes?schoolId=s1", nil, "", h.List)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", srv.schoolID)
}

func TestClassHandlerCreateConflict(t *testing.T) {
	srv := &fakeClassSrv{err: appErrors.Clone(appErrors.ErrConflict, "class already exists")}
	h := NewClassHandler(srv)

	body := jsonBody(t, dto.CreateClassRequest{SchoolID: "s1", Name: "5A", Grade: "5", Section: "A", Year: 2024})
	rec, env := serve(t, photographer, http.MethodPost, "/classes", "/classes", body, "application/json", h.Create)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error["code"])
}

func TestClassHandlerCreate(t *testing.T) {
	h := NewClassHandler(&fakeClassSrv{})
	body := jsonBody(t, dto.CreateClassRequest{SchoolID: "s1", Name: "5A", Grade: "5", Section: "A", Year: 2024})
	rec, _ := serve(t, photographer, http.MethodPost, "/classes", "/classes", body, "application/json", h.Create)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
