// File: internal/common/response.go
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError sends an error response. Errors that are not APIErrors are logged
// and replaced by ErrInternalServer so internals never reach the caller.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get(LoggerKey); exists {
			if logger, ok := l.(*zap.Logger); ok {
				logger.Error("Unhandled internal error being wrapped", zap.Error(err))
			}
		}
		apiErr = ErrInternalServer
	}

	if apiErr.PlainText {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.AbortWithStatus(apiErr.StatusCode)
		_, _ = c.Writer.WriteString(apiErr.Message)
		return
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondOK sends a 200 OK response with data as the JSON body.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
