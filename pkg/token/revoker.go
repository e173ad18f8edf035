package token

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Revoker is a server-side denylist of revoked tokens. Logout writes
// the presented token here for the remainder of its lifetime, so a
// reissued logged_in=false token actually terminates the session
// instead of leaving prior tokens usable.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type memoryRevoker struct {
	cache *cache.Cache
}

// NewMemoryRevoker returns an in-process revocation store. Entries
// expire with the token they shadow, so the set stays bounded.
func NewMemoryRevoker() Revoker {
	return &memoryRevoker{
		cache: cache.New(7*24*time.Hour, time.Hour),
	}
}

func (r *memoryRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(token, struct{}{}, ttl)
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	_, found := r.cache.Get(token)
	return found, nil
}
