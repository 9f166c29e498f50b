package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"edulearn/internal/domain/subscription"
	"edulearn/internal/shared/logger"
)

// GetCurrentSubscriptionUseCase serves the access middleware, so it sits
// behind the read-through cache when one is configured.
type GetCurrentSubscriptionUseCase struct {
	subscriptionRepo subscription.SchoolSubscriptionRepository
	cache            CurrentSubscriptionCache
	logger           logger.Interface
}

func NewGetCurrentSubscriptionUseCase(
	subscriptionRepo subscription.SchoolSubscriptionRepository,
	logger logger.Interface,
) *GetCurrentSubscriptionUseCase {
	return &GetCurrentSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetCurrentSubscriptionUseCase) SetCache(cache CurrentSubscriptionCache) {
	uc.cache = cache
}

// Execute returns the school's latest paid subscription, active or expired.
func (uc *GetCurrentSubscriptionUseCase) Execute(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, schoolID)
		if err != nil {
			uc.logger.Warnw("subscription cache read failed, falling back to database", "school_id", schoolID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	sub, err := uc.subscriptionRepo.GetCurrentBySchoolID(ctx, schoolID)
	if err != nil {
		uc.logger.Errorw("failed to get current subscription", "school_id", schoolID, "error", err)
		return nil, fmt.Errorf("failed to get current subscription: %w", err)
	}
	if sub == nil {
		return nil, toAppError(subscription.ErrSubscriptionNotFound)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, sub); err != nil {
			uc.logger.Warnw("failed to cache current subscription", "school_id", schoolID, "error", err)
		}
	}

	return sub, nil
}
