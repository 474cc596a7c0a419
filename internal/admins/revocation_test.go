package admins

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRevocationsExpireWithToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rev := NewRedisRevocations(client)
	ctx := context.Background()

	require.NoError(t, rev.Revoke(ctx, "jti-1", time.Now().Add(30*time.Minute)))

	revoked, err := rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("genius:revoked:jti-1"))

	ttl := mr.TTL("genius:revoked:jti-1")
	assert.True(t, ttl > 29*time.Minute && ttl <= 30*time.Minute, "unexpected ttl %s", ttl)

	mr.FastForward(31 * time.Minute)
	revoked, err = rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationsSkipExpiredTokens(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rev := NewRedisRevocations(client)
	require.NoError(t, rev.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("genius:revoked:old"))
}

func TestRedisRevocationsSurfaceOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, err := NewRedisRevocations(client).IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}

func TestMemoryRevocationsForgetAfterExpiry(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	rev := NewMemoryRevocations()
	rev.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, rev.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	revoked, err := rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
