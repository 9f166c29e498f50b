package usecases

import (
	"context"
	"fmt"

	"edulearn/internal/application/subscription/dto"
	"edulearn/internal/domain/subscription"
	"edulearn/internal/shared/logger"
)

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	mapper   *dto.SubscriptionMapper
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, mapper *dto.SubscriptionMapper, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		mapper:   mapper,
		logger:   logger,
	}
}

// Execute lists plans open for purchase. Archived plans are omitted.
func (uc *ListPlansUseCase) Execute(ctx context.Context) ([]*dto.PlanDTO, error) {
	plans, err := uc.planRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return uc.mapper.Plans.ToDTOList(plans), nil
}
