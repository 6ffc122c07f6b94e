package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/models"
)

// AuditResourceKey lets a handler name the record it touched, e.g. the new event id.
const AuditResourceKey = "auditResourceID"

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// SetAuditResource records the id of the resource handled by the current request.
func SetAuditResource(c *gin.Context, id string) {
	c.Set(AuditResourceKey, id)
}

// Audit records an audit log after requests that completed successfully.
func Audit(repo auditRecorder, logger *zap.Logger, action, resource string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		auth := CurrentAuth(c)
		var userID *int64
		if auth.IsAuthenticated {
			id := auth.UserID
			userID = &id
		}
		var resourceID *string
		if id := c.GetString(AuditResourceKey); id != "" {
			resourceID = &id
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		if err := repo.CreateAuditLog(c.Request.Context(), &models.AuditLog{
			UserID:     userID,
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID,
			NewValues:  body,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
		}); err != nil {
			logger.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
		}
	}
}
