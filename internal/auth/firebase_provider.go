package auth

import (
	"context"
	"fmt"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// IDTokenVerifier is the part of the Firebase Admin SDK the provider needs.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// FirebaseProvider resolves Firebase ID tokens. The identity id is the Firebase UID.
type FirebaseProvider struct {
	verifier IDTokenVerifier
}

func NewFirebaseProvider(verifier IDTokenVerifier) *FirebaseProvider {
	return &FirebaseProvider{verifier: verifier}
}

func (p *FirebaseProvider) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNoIdentity
	}
	fbToken, err := p.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	if fbToken == nil || fbToken.UID == "" {
		return nil, ErrNoIdentity
	}
	return identityFromFirebase(fbToken), nil
}

func identityFromFirebase(token *firebaseauth.Token) *Identity {
	id := &Identity{ID: token.UID}
	if token.Expires > 0 {
		id.ExpiresAt = time.Unix(token.Expires, 0)
	}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.FirstName, id.LastName = splitName(name)
	}
	return id
}
