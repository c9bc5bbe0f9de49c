package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
)

type fakeDashboardSrv struct {
	hit bool
}

func (f *fakeDashboardSrv) Counts(context.Context, *models.Identity) (*models.DashboardCounts, bool, error) {
	return &models.DashboardCounts{Schools: 2, Classes: 5, Students: 120, Sessions: 3}, f.hit, nil
}

func TestDashboardHandlerCounts(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardSrv{hit: true})

	rec, env := serve(t, photographer, http.MethodGet, "/dashboard", "/dashboard", nil, "", h.Counts)
	require.Equal(t, http.StatusOK, rec.Code)

	var counts models.DashboardCounts
	decodeData(t, env, &counts)
	assert.Equal(t, 120, counts.Students)
	require.NotNil(t, env.Meta)
	assert.Equal(t, true, env.Meta["cacheHit"])
	assert.Contains(t, env.Meta, "processingTimeMs")
}

func TestDashboardHandlerRequiresIdentity(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardSrv{})
	rec, env := serve(t, nil, http.MethodGet, "/dashboard", "/dashboard", nil, "", h.Counts)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error["code"])
}
