package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type memoryCache struct {
	values  map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

type countingDashboardRepo struct {
	calls int
}

func (r *countingDashboardRepo) Counts(context.Context, string) (*models.DashboardCounts, error) {
	r.calls++
	return &models.DashboardCounts{Schools: 2, Classes: 3, Students: 40, Sessions: 1}, nil
}

func TestDashboardServiceCachesCounts(t *testing.T) {
	repo := &countingDashboardRepo{}
	store := newMemoryCache()
	cache := NewCacheService(store, NewMetricsService(), time.Minute, nil)
	svc := NewDashboardService(repo, cache, time.Minute, nil)

	counts, hit, err := svc.Counts(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 40, counts.Students)
	assert.False(t, counts.GeneratedAt.IsZero())

	counts, hit, err = svc.Counts(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, counts.Classes)
	assert.Equal(t, 1, repo.calls)

	svc.Invalidate(context.Background(), "user-1")
	assert.Equal(t, []string{"dashboard:user-1"}, store.deleted)

	_, hit, err = svc.Counts(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, repo.calls)
}

func TestDashboardServiceWithoutCache(t *testing.T) {
	repo := &countingDashboardRepo{}
	svc := NewDashboardService(repo, nil, 0, nil)

	_, hit, err := svc.Counts(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, hit)
	svc.Invalidate(context.Background(), "user-1")

	_, _, err = svc.Counts(context.Background(), nil)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}
