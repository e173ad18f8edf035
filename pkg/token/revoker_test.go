package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	revoker := NewMemoryRevoker()

	revoked, err := revoker.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revoker.Revoke(ctx, "some-token", time.Hour))

	revoked, err = revoker.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay usable.
	revoked, err = revoker.IsRevoked(ctx, "other-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRevokerExpiredTTLIsNoop(t *testing.T) {
	ctx := context.Background()
	revoker := NewMemoryRevoker()

	// A token past its natural expiry needs no denylist entry.
	require.NoError(t, revoker.Revoke(ctx, "stale-token", -time.Minute))

	revoked, err := revoker.IsRevoked(ctx, "stale-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}
