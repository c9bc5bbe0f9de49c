package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

type dashboardRepository interface {
	Counts(ctx context.Context, photographerID string) (*models.DashboardCounts, error)
}

// DashboardService serves per-photographer resource counts through the cache.
type DashboardService struct {
	repo   dashboardRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs DashboardService. A nil cache always reads through.
func NewDashboardService(repo dashboardRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// Counts returns the caller's dashboard counts.
func (s *DashboardService) Counts(ctx context.Context, identity *models.Identity) (*models.DashboardCounts, bool, error) {
	if identity == nil || identity.UserID == "" {
		return nil, false, appErrors.ErrUnauthorized
	}
	key := dashboardCacheKey(identity.UserID)

	var cached models.DashboardCounts
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	counts, err := s.repo.Counts(ctx, identity.UserID)
	if err != nil {
		s.logger.Error("dashboard counts failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard")
	}
	counts.GeneratedAt = s.now().UTC()
	_ = s.cache.Set(ctx, key, counts, s.ttl)
	return counts, false, nil
}

// Invalidate drops the cached counts after a write that changes them.
func (s *DashboardService) Invalidate(ctx context.Context, photographerID string) {
	if s == nil {
		return
	}
	_ = s.cache.Delete(ctx, dashboardCacheKey(photographerID))
}

func dashboardCacheKey(photographerID string) string {
	return "dashboard:" + photographerID
}
