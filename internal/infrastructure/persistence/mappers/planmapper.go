package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/infrastructure/persistence/models"
)

func PlanToModel(p *subscription.SubscriptionPlan) (*models.SubscriptionPlanModel, error) {
	caps, err := json.Marshal(p.Caps())
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan caps: %w", err)
	}

	return &models.SubscriptionPlanModel{
		ID:           p.ID().String(),
		Code:         p.Code(),
		Name:         p.Name(),
		Description:  p.Description(),
		MonthlyPrice: p.MonthlyPrice(),
		YearlyPrice:  p.YearlyPrice(),
		Currency:     p.Currency(),
		Caps:         datatypes.JSON(caps),
		Status:       p.Status().String(),
		SortOrder:    p.SortOrder(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}, nil
}

func PlanToDomain(model *models.SubscriptionPlanModel) (*subscription.SubscriptionPlan, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid plan id %q: %w", model.ID, err)
	}

	var caps vo.UsageCaps
	if len(model.Caps) > 0 {
		if err := json.Unmarshal(model.Caps, &caps); err != nil {
			return nil, fmt.Errorf("invalid caps for plan %s: %w", model.Code, err)
		}
	}

	return subscription.ReconstructSubscriptionPlan(
		id, model.Code, model.Name, model.Description,
		model.MonthlyPrice, model.YearlyPrice, model.Currency,
		caps, vo.PlanStatus(model.Status), model.SortOrder,
		model.CreatedAt, model.UpdatedAt,
	)
}
