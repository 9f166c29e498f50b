package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func paidSubscription(t *testing.T) *subscription.SchoolSubscription {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	sub, err := subscription.NewPendingSubscription(uuid.New(), uuid.New(), vo.BillingCycleYearly, 1000000, uuid.New(), "1740816000000123", start)
	require.NoError(t, err)
	require.NoError(t, sub.ConfirmPayment(start.Add(time.Minute)))
	return sub
}

func TestRedisCurrentSubscriptionCache_RoundTrip(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewRedisCurrentSubscriptionCache(client, time.Minute, logger.NewNop())
	ctx := context.Background()
	sub := paidSubscription(t)

	miss, err := cache.Get(ctx, sub.SchoolID())
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.Set(ctx, sub))

	got, err := cache.Get(ctx, sub.SchoolID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sub.ID(), got.ID())
	assert.Equal(t, vo.StatusActive, got.Status())
	assert.True(t, got.PaymentStatus().IsPaid())
	assert.True(t, sub.EndDate().Equal(got.EndDate()))
	require.NotNil(t, got.PurchasedAt())
	assert.True(t, sub.PurchasedAt().Equal(*got.PurchasedAt()))
	assert.Equal(t, sub.ExternalTransactionCode(), got.ExternalTransactionCode())

	require.NoError(t, cache.Invalidate(ctx, sub.SchoolID()))
	gone, err := cache.Get(ctx, sub.SchoolID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRedisCurrentSubscriptionCache_ExpiresWithinJitter(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewRedisCurrentSubscriptionCache(client, time.Minute, logger.NewNop())
	sub := paidSubscription(t)

	require.NoError(t, cache.Set(context.Background(), sub))

	ttl := mr.TTL(currentSubscriptionKeyPrefix + sub.SchoolID().String())
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.Less(t, ttl, time.Minute+12*time.Second)

	mr.FastForward(2 * time.Minute)
	got, err := cache.Get(context.Background(), sub.SchoolID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCurrentSubscriptionCache_MalformedEntryIsAMiss(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewRedisCurrentSubscriptionCache(client, time.Minute, logger.NewNop())
	schoolID := uuid.New()
	key := currentSubscriptionKeyPrefix + schoolID.String()

	mr.HSet(key, fieldID, "not-a-uuid")

	got, err := cache.Get(context.Background(), schoolID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists(key))
}
