package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
)

// Decision is the outcome of an ownership check.
type Decision int

const (
	Authorized Decision = iota
	NotFound
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case NotFound:
		return "not_found"
	default:
		return "forbidden"
	}
}

type ownershipRepository interface {
	OwnerOf(ctx context.Context, kind models.ResourceKind, id string) (string, error)
}

// OwnershipGuard decides whether an identity owns a resource by walking its owner chain.
type OwnershipGuard struct {
	repo   ownershipRepository
	logger *zap.Logger
}

// NewOwnershipGuard constructs an ownership guard.
func NewOwnershipGuard(repo ownershipRepository, logger *zap.Logger) *OwnershipGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OwnershipGuard{repo: repo, logger: logger}
}

// Check resolves the owner and compares it with the caller. Missing resources are
// reported before ownership is considered.
func (g *OwnershipGuard) Check(ctx context.Context, kind models.ResourceKind, id string, identity *models.Identity) (Decision, error) {
	if identity == nil || identity.UserID == "" {
		return Forbidden, nil
	}
	owner, err := g.repo.OwnerOf(ctx, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NotFound, nil
		}
		return Forbidden, err
	}
	if owner != identity.UserID {
		return Forbidden, nil
	}
	return Authorized, nil
}

// Authorize converts Check into the API error taxonomy.
func (g *OwnershipGuard) Authorize(ctx context.Context, kind models.ResourceKind, id string, identity *models.Identity) error {
	if identity == nil || identity.UserID == "" {
		return appErrors.ErrUnauthorized
	}
	decision, err := g.Check(ctx, kind, id, identity)
	if err != nil {
		g.logger.Error("ownership lookup failed", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify ownership")
	}
	switch decision {
	case Authorized:
		return nil
	case NotFound:
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", kind))
	default:
		return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s belongs to another photographer", kind))
	}
}
