// Package auth resolves the caller's external identity. Identities are issued and verified by an
// external provider; this service only trusts what the provider reports.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"onboarding_backend/internal/config"
	"onboarding_backend/internal/firebase"

	"go.uber.org/zap"
)

// ErrNoIdentity means no identity could be resolved from the presented credentials.
var ErrNoIdentity = errors.New("no identity resolved")

// Identity is what the external provider knows about the caller.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	// ExpiresAt is when the presented token stops being valid. Zero when unknown.
	ExpiresAt time.Time `json:"-"`
}

// Provider resolves a bearer token into an Identity. Implementations return an error wrapping
// ErrNoIdentity when the token does not identify anyone.
type Provider interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// NewProvider builds the identity provider selected by AUTH_PROVIDER, wrapped in a TTL cache
// when IDENTITY_CACHE_TTL_SECONDS is positive.
func NewProvider(cfg *config.Config, logger *zap.Logger) (Provider, error) {
	var p Provider
	switch strings.ToLower(cfg.AuthProvider) {
	case config.AuthProviderFirebase:
		svc, err := firebase.NewFirebaseService(cfg, logger.Named("Firebase"))
		if err != nil {
			return nil, err
		}
		p = NewFirebaseProvider(svc)
	case config.AuthProviderJWT:
		logger.Warn("Using the development JWT identity provider; do not use in production.")
		p = NewJWTProvider(cfg.JWTSecret, cfg.JWTIssuer)
	default:
		return nil, fmt.Errorf("unsupported identity provider %q", cfg.AuthProvider)
	}

	if cfg.IdentityCacheTTL > 0 {
		p = NewCachedProvider(p, cfg.IdentityCacheTTL)
	}
	return p, nil
}

// splitName splits a display name into first and last name on the first space.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	first, last, _ = strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}
