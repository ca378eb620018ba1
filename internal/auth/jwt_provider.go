package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DevClaims are the claims carried by development identity tokens.
type DevClaims struct {
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

// JWTProvider resolves HS256 tokens signed with a shared secret. It stands in for the external
// provider during local development; the token subject is the identity id.
type JWTProvider struct {
	secret []byte
	issuer string
}

func NewJWTProvider(secret, issuer string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), issuer: issuer}
}

func (p *JWTProvider) Resolve(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNoIdentity
	}

	claims := &DevClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrNoIdentity
	}

	id := &Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Issue signs a development token for id valid for ttl.
func (p *JWTProvider) Issue(id Identity, ttl time.Duration) (string, error) {
	if id.ID == "" {
		return "", errors.New("identity id is required")
	}
	now := time.Now()
	claims := DevClaims{
		Email:      id.Email,
		GivenName:  id.FirstName,
		FamilyName: id.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
