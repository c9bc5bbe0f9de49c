package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/pkg/jobs"
)

type auditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

type auditQueue interface {
	Offer(job models.AuditLog) error
}

// AuditService hands audit entries to a background queue so requests never wait on the write.
type AuditService struct {
	repo   auditRepository
	queue  auditQueue
	logger *zap.Logger
}

// NewAuditService constructs AuditService. Without a queue entries are written inline.
func NewAuditService(repo auditRepository, queue auditQueue, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, queue: queue, logger: logger}
}

// NewAuditQueue builds the worker queue that persists entries through repo.
func NewAuditQueue(repo auditRepository, cfg jobs.QueueConfig) *jobs.Queue[models.AuditLog] {
	return jobs.NewQueue("audit", func(ctx context.Context, entry models.AuditLog) error {
		return repo.Create(ctx, &entry)
	}, cfg)
}

// Record enqueues an entry. Failures are logged; auditing never fails the caller.
func (s *AuditService) Record(ctx context.Context, entry models.AuditLog) {
	if s == nil || s.repo == nil {
		return
	}
	if s.queue != nil {
		err := s.queue.Offer(entry)
		if err == nil {
			return
		}
		if errors.Is(err, jobs.ErrQueueFull) {
			s.logger.Warn("audit queue full, writing inline", zap.String("action", entry.Action))
		} else {
			s.logger.Debug("audit queue unavailable, writing inline", zap.Error(err))
		}
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logger.Warn("audit write failed", zap.String("action", entry.Action), zap.String("resource", entry.Resource), zap.Error(err))
	}
}
