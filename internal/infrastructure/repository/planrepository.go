package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/infrastructure/persistence/mappers"
	"edulearn/internal/infrastructure/persistence/models"
	"edulearn/internal/shared/db"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*subscription.SubscriptionPlan, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *PlanRepository) GetByCode(ctx context.Context, code string) (*subscription.SubscriptionPlan, error) {
	return r.first(ctx, "code = ?", code)
}

func (r *PlanRepository) ListActive(ctx context.Context) ([]*subscription.SubscriptionPlan, error) {
	var list []models.SubscriptionPlanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", vo.PlanStatusActive.String()).
		Order("sort_order ASC, monthly_price ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*subscription.SubscriptionPlan, 0, len(list))
	for i := range list {
		plan, err := mappers.PlanToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Upsert inserts the plan or, when its code already exists, overwrites the
// catalog columns. The stored ID is never changed.
func (r *PlanRepository) Upsert(ctx context.Context, plan *subscription.SubscriptionPlan) error {
	model, err := mappers.PlanToModel(plan)
	if err != nil {
		return err
	}

	err = db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "monthly_price", "yearly_price",
				"currency", "caps", "status", "sort_order", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert plan %s: %w", plan.Code(), err)
	}
	return nil
}

func (r *PlanRepository) first(ctx context.Context, query string, args ...any) (*subscription.SubscriptionPlan, error) {
	var model models.SubscriptionPlanModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return mappers.PlanToDomain(&model)
}
