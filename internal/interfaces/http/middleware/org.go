package middleware

import (
	"net/http"
	"strings"

	"github.com/motodms/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for organization scoping
const (
	OrgIDKey     = "org_id"
	OrgHeaderKey = "X-Org-ID"
)

// OrgMiddlewareConfig holds configuration for organization middleware
type OrgMiddlewareConfig struct {
	// SkipPaths are paths that don't require organization context (e.g. health check)
	SkipPaths []string
	// Required determines if organization context is mandatory
	Required bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultOrgConfig returns default organization middleware configuration
func DefaultOrgConfig() OrgMiddlewareConfig {
	return OrgMiddlewareConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready", "/api/v1/health"},
		Required:  true,
		Logger:    nil,
	}
}

// OrgMiddleware extracts the organization ID from the X-Org-ID header
func OrgMiddleware() gin.HandlerFunc {
	return OrgMiddlewareWithConfig(DefaultOrgConfig())
}

// OrgMiddlewareWithConfig returns organization middleware with custom configuration
func OrgMiddlewareWithConfig(cfg OrgMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		orgID := c.GetHeader(OrgHeaderKey)

		if orgID != "" {
			if _, err := uuid.Parse(orgID); err != nil {
				respondBadOrg(c, "Invalid organization ID format")
				return
			}
		}

		if orgID == "" && cfg.Required {
			respondBadOrg(c, "Organization identification required")
			return
		}

		if orgID != "" {
			c.Set(OrgIDKey, orgID)

			// Propagate to the request context so the service layer logs carry it
			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithOrgID(ctx, log, orgID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Organization identified", zap.String("org_id", orgID))
			}
		}

		c.Next()
	}
}

// respondBadOrg sends a bad request response for organization extraction failures
func respondBadOrg(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_BAD_REQUEST",
			"message": message,
		},
	})
}

// GetOrgID retrieves the organization ID from gin.Context
func GetOrgID(c *gin.Context) string {
	if orgID, exists := c.Get(OrgIDKey); exists {
		if oid, ok := orgID.(string); ok {
			return oid
		}
	}
	return ""
}

// GetOrgUUID retrieves the organization ID as UUID from gin.Context
func GetOrgUUID(c *gin.Context) (uuid.UUID, error) {
	orgID := GetOrgID(c)
	if orgID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(orgID)
}

// OptionalOrgMiddleware creates middleware that doesn't require an organization
func OptionalOrgMiddleware() gin.HandlerFunc {
	cfg := DefaultOrgConfig()
	cfg.Required = false
	return OrgMiddlewareWithConfig(cfg)
}
