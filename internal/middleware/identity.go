// File: internal/middleware/identity.go
package middleware

import (
	"onboarding_backend/internal/auth"
	"onboarding_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityMiddleware resolves the caller's external identity once per request. Requests without
// a resolvable identity are rejected with 401 before any handler runs.
func IdentityMiddleware(provider auth.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := common.GetTokenFromContext(c)
		if token == "" {
			logger.Debug("Bearer token missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		identity, err := provider.Resolve(c.Request.Context(), token)
		if err != nil || identity == nil || identity.ID == "" {
			logger.Warn("Identity resolution failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		c.Set(common.IdentityKey, identity)
		logger.Debug("Identity resolved", zap.String("identityID", identity.ID))
		c.Next()
	}
}

// GetIdentityFromContext returns the identity set by IdentityMiddleware, or nil.
func GetIdentityFromContext(c *gin.Context) *auth.Identity {
	val, exists := c.Get(common.IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
