// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// IdentityKey is the context key for the resolved external identity
	IdentityKey = "identity"
	// LoggerKey is the context key for the request-scoped logger
	LoggerKey = "logger"
)
