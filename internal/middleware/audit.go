package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/darthcode66/Snap-Self/internal/models"
)

const auditResourceIDKey = "audit_resource_id"

type auditRecorder interface {
	Record(ctx context.Context, entry models.AuditLog)
}

// SetAuditResourceID lets a handler name the resource it created.
func SetAuditResourceID(c *gin.Context, id string) {
	if c != nil && id != "" {
		c.Set(auditResourceIDKey, id)
	}
}

// Audit records successful mutating requests after the handler runs.
func Audit(recorder auditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		entry := models.AuditLog{
			Action:    action,
			Resource:  resource,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			CreatedAt: start,
		}
		if identity := CurrentIdentity(c); identity != nil {
			userID := identity.UserID
			entry.UserID = &userID
		}
		if id := auditResourceID(c); id != "" {
			entry.ResourceID = &id
		}
		entry.NewValues, _ = json.Marshal(map[string]interface{}{
			"path":      c.FullPath(),
			"method":    c.Request.Method,
			"status":    c.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
		})

		// the request context is done once the response is written
		recorder.Record(context.WithoutCancel(c.Request.Context()), entry)
	}
}

func auditResourceID(c *gin.Context) string {
	if id := c.GetString(auditResourceIDKey); id != "" {
		return id
	}
	return c.Param("id")
}
