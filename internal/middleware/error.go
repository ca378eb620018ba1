// File: internal/middleware/error.go
package middleware

import (
	"onboarding_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler converts errors attached with c.Error into API responses. Unknown errors are
// logged and reported as a generic 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			ginErr := c.Errors.Last()
			if apiErr, ok := common.IsAPIError(ginErr.Err); ok {
				common.RespondWithError(c, apiErr)
				return
			}
			logger.Error("Unhandled application error",
				zap.Error(ginErr.Err),
				zap.String("path", c.Request.URL.Path),
				zap.Any("meta", ginErr.Meta),
				zap.String("request_id", c.GetString(RequestIDContextKey)),
			)
			common.RespondWithError(c, common.ErrInternalServer)
			return
		}

		switch c.Writer.Status() {
		case 404:
			common.RespondWithError(c, common.ErrNotFound.WithMessage("The requested endpoint does not exist."))
		case 405:
			common.RespondWithError(c, common.ErrMethodNotAllowed)
		}
	}
}
