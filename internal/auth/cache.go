package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoises successful resolutions for a short TTL so repeated requests with the
// same token skip provider verification. Failures are never cached, and an entry never outlives
// the token it was resolved from.
type CachedProvider struct {
	next  Provider
	ttl   time.Duration
	cache *cache.Cache
}

func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		ttl:   ttl,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNoIdentity
	}
	key := tokenKey(token)
	if v, found := p.cache.Get(key); found {
		id := *v.(*Identity)
		return &id, nil
	}

	id, err := p.next.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if ttl := p.entryTTL(id); ttl > 0 {
		stored := *id
		p.cache.Set(key, &stored, ttl)
	}
	return id, nil
}

func (p *CachedProvider) entryTTL(id *Identity) time.Duration {
	if id.ExpiresAt.IsZero() {
		return p.ttl
	}
	remaining := time.Until(id.ExpiresAt)
	if remaining < p.ttl {
		return remaining
	}
	return p.ttl
}

// tokenKey avoids keeping raw bearer tokens in memory.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
