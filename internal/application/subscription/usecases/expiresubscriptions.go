package usecases

import (
	"context"
	"fmt"
	"time"

	"edulearn/internal/domain/subscription"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/logger"
)

const defaultExpiryBatchSize = 100

type ExpireSubscriptionsResult struct {
	Expired int
	Failed  int
}

// ExpireSubscriptionsUseCase moves active rows whose period has ended to
// expired. Readers already treat such rows as expired, so this only keeps the
// status column honest for reporting.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.SchoolSubscriptionRepository
	txRunner         TransactionRunner
	cache            CurrentSubscriptionCache
	batchSize        int
	now              func() time.Time
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.SchoolSubscriptionRepository,
	txRunner TransactionRunner,
	batchSize int,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	if batchSize <= 0 {
		batchSize = defaultExpiryBatchSize
	}
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		txRunner:         txRunner,
		batchSize:        batchSize,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

func (uc *ExpireSubscriptionsUseCase) SetCache(cache CurrentSubscriptionCache) {
	uc.cache = cache
}

func (uc *ExpireSubscriptionsUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Execute processes one batch. Each row commits on its own so one failure
// does not hold back the rest.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (*ExpireSubscriptionsResult, error) {
	now := uc.now()

	due, err := uc.subscriptionRepo.FindExpiredActive(ctx, now, uc.batchSize)
	if err != nil {
		uc.logger.Errorw("failed to find expired subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}

	result := &ExpireSubscriptionsResult{}
	for _, sub := range due {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		err := uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := sub.Expire(now); err != nil {
				return err
			}
			return uc.subscriptionRepo.Update(txCtx, sub)
		})
		if err != nil {
			result.Failed++
			uc.logger.Errorw("failed to expire subscription", "subscription_id", sub.ID(), "school_id", sub.SchoolID(), "error", err)
			continue
		}
		result.Expired++

		if uc.cache != nil {
			if err := uc.cache.Invalidate(ctx, sub.SchoolID()); err != nil {
				uc.logger.Warnw("failed to invalidate subscription cache", "school_id", sub.SchoolID(), "error", err)
			}
		}
	}

	if result.Expired > 0 || result.Failed > 0 {
		uc.logger.Infow("expired lapsed subscriptions", "expired", result.Expired, "failed", result.Failed)
	}
	return result, nil
}
