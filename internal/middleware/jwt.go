package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/darthcode66/Snap-Self/internal/models"
	appErrors "github.com/darthcode66/Snap-Self/pkg/errors"
	"github.com/darthcode66/Snap-Self/pkg/response"
)

// ContextUserKey is the gin context key storing the caller identity.
const ContextUserKey = "currentUser"

type identityVerifier interface {
	Verify(token string) (*models.Identity, error)
}

// Identity resolves the bearer token once per request and rejects anonymous callers.
func Identity(verifier identityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by Identity, or nil.
func CurrentIdentity(c *gin.Context) *models.Identity {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*models.Identity)
	return identity
}

// LogFields tags the access log with the caller and the session being worked on.
func LogFields(c *gin.Context) []zap.Field {
	var fields []zap.Field
	if identity := CurrentIdentity(c); identity != nil {
		fields = append(fields, zap.String("user_id", identity.UserID), zap.String("role", string(identity.Role)))
	}
	if strings.Contains(c.FullPath(), "/sessions/:id") {
		fields = append(fields, zap.String("session_id", c.Param("id")))
	}
	return fields
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
