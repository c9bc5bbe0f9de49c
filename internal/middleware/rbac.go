package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

// RequireRoles admits only identities holding one of the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role not allowed"))
			c.Abort()
			return
		}
		c.Next()
	}
}
