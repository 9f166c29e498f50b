package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/shared/logger"
)

const (
	currentSubscriptionKeyPrefix  = "school:subscription:current:"
	defaultCurrentSubscriptionTTL = 5 * time.Minute

	fieldID            = "id"
	fieldSchoolID      = "school_id"
	fieldPlanID        = "plan_id"
	fieldBillingCycle  = "billing_cycle"
	fieldStatus        = "status"
	fieldPaymentStatus = "payment_status"
	fieldStartDate     = "start_date"
	fieldEndDate       = "end_date"
	fieldAmountPaid    = "amount_paid"
	fieldTransactionID = "transaction_id"
	fieldExternalCode  = "external_code"
	fieldPurchasedAt   = "purchased_at"
	fieldAIUsage       = "ai_usage_minutes"
	fieldLastReset     = "last_usage_reset"
	fieldVersion       = "version"
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
)

// RedisCurrentSubscriptionCache keeps each school's current subscription in a
// Redis hash. Times are stored as unix milliseconds.
type RedisCurrentSubscriptionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisCurrentSubscriptionCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisCurrentSubscriptionCache {
	if ttl <= 0 {
		ttl = defaultCurrentSubscriptionTTL
	}
	return &RedisCurrentSubscriptionCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCurrentSubscriptionCache) key(schoolID uuid.UUID) string {
	return currentSubscriptionKeyPrefix + schoolID.String()
}

// ttlWithJitter spreads expiry over an extra 20% so entries written together
// do not all miss at once.
func (c *RedisCurrentSubscriptionCache) ttlWithJitter() time.Duration {
	jitter := int64(c.ttl / 5)
	if jitter <= 0 {
		return c.ttl
	}
	return c.ttl + time.Duration(rand.Int64N(jitter))
}

func (c *RedisCurrentSubscriptionCache) Get(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error) {
	result, err := c.client.HGetAll(ctx, c.key(schoolID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get current subscription from cache: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	sub, err := decodeSubscription(result)
	if err != nil {
		// A malformed entry is treated as a miss and dropped.
		c.logger.Warnw("discarding malformed subscription cache entry", "school_id", schoolID, "error", err)
		_ = c.client.Del(ctx, c.key(schoolID)).Err()
		return nil, nil
	}
	return sub, nil
}

func (c *RedisCurrentSubscriptionCache) Set(ctx context.Context, sub *subscription.SchoolSubscription) error {
	key := c.key(sub.SchoolID())

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeSubscription(sub))
	pipe.Expire(ctx, key, c.ttlWithJitter())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set current subscription in cache: %w", err)
	}

	c.logger.Debugw("current subscription cached",
		"school_id", sub.SchoolID(),
		"subscription_id", sub.ID(),
	)
	return nil
}

func (c *RedisCurrentSubscriptionCache) Invalidate(ctx context.Context, schoolID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(schoolID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate current subscription cache: %w", err)
	}
	c.logger.Debugw("current subscription cache invalidated", "school_id", schoolID)
	return nil
}

func encodeSubscription(sub *subscription.SchoolSubscription) map[string]any {
	fields := map[string]any{
		fieldID:            sub.ID().String(),
		fieldSchoolID:      sub.SchoolID().String(),
		fieldPlanID:        sub.PlanID().String(),
		fieldBillingCycle:  sub.BillingCycle().String(),
		fieldStatus:        sub.Status().String(),
		fieldPaymentStatus: sub.PaymentStatus().String(),
		fieldStartDate:     sub.StartDate().UnixMilli(),
		fieldEndDate:       sub.EndDate().UnixMilli(),
		fieldAmountPaid:    sub.AmountPaid(),
		fieldTransactionID: sub.TransactionID().String(),
		fieldExternalCode:  sub.ExternalTransactionCode(),
		fieldAIUsage:       sub.CurrentPeriodAIUsageMinutes(),
		fieldVersion:       sub.Version(),
		fieldCreatedAt:     sub.CreatedAt().UnixMilli(),
		fieldUpdatedAt:     sub.UpdatedAt().UnixMilli(),
	}
	if t := sub.PurchasedAt(); t != nil {
		fields[fieldPurchasedAt] = t.UnixMilli()
	}
	if t := sub.LastUsageResetDate(); t != nil {
		fields[fieldLastReset] = t.UnixMilli()
	}
	return fields
}

func decodeSubscription(h map[string]string) (*subscription.SchoolSubscription, error) {
	var d decoder
	id := d.uuid(h[fieldID])
	schoolID := d.uuid(h[fieldSchoolID])
	planID := d.uuid(h[fieldPlanID])
	transactionID := d.uuid(h[fieldTransactionID])
	start := d.time(h[fieldStartDate])
	end := d.time(h[fieldEndDate])
	amount := d.int64(h[fieldAmountPaid])
	aiUsage := int(d.int64(h[fieldAIUsage]))
	version := int(d.int64(h[fieldVersion]))
	created := d.time(h[fieldCreatedAt])
	updated := d.time(h[fieldUpdatedAt])
	purchasedAt := d.optionalTime(h[fieldPurchasedAt])
	lastReset := d.optionalTime(h[fieldLastReset])
	if d.err != nil {
		return nil, d.err
	}

	return subscription.ReconstructSchoolSubscription(
		id, schoolID, planID,
		vo.BillingCycle(h[fieldBillingCycle]),
		vo.SubscriptionStatus(h[fieldStatus]),
		vo.PaymentStatus(h[fieldPaymentStatus]),
		start, end, amount, transactionID, h[fieldExternalCode],
		purchasedAt, aiUsage, lastReset, version, created, updated,
	)
}

// decoder keeps the first parse error so fields can be read in sequence.
type decoder struct {
	err error
}

func (d *decoder) uuid(s string) uuid.UUID {
	if d.err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		d.err = fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return id
}

func (d *decoder) int64(s string) int64 {
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		d.err = fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return v
}

func (d *decoder) time(s string) time.Time {
	return time.UnixMilli(d.int64(s)).UTC()
}

func (d *decoder) optionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := d.time(s)
	return &t
}
