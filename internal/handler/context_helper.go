package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/middleware"
	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

func identityFromContext(c *gin.Context) *models.Identity {
	return middleware.CurrentIdentity(c)
}

// requireIdentity writes 401 and returns nil when the request carries no identity.
func requireIdentity(c *gin.Context) *models.Identity {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthorized)
	}
	return identity
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
