package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/infrastructure/persistence/mappers"
	"edulearn/internal/infrastructure/persistence/models"
	"edulearn/internal/shared/db"
	apperrors "edulearn/internal/shared/errors"
)

type SchoolSubscriptionRepository struct {
	db *gorm.DB
}

func NewSchoolSubscriptionRepository(db *gorm.DB) *SchoolSubscriptionRepository {
	return &SchoolSubscriptionRepository{db: db}
}

func (r *SchoolSubscriptionRepository) Create(ctx context.Context, sub *subscription.SchoolSubscription) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.SchoolSubscriptionToModel(sub)).Error; err != nil {
		return fmt.Errorf("failed to create school subscription: %w", err)
	}
	return nil
}

func (r *SchoolSubscriptionRepository) Update(ctx context.Context, sub *subscription.SchoolSubscription) error {
	model := mappers.SchoolSubscriptionToModel(sub)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SchoolSubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(r.mutableColumns(model))
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return fmt.Errorf("%w: school already has an active subscription", subscription.ErrInvalidStatusTransition)
		}
		return fmt.Errorf("failed to update school subscription: %w", result.Error)
	}
	return nil
}

// ActivateIfPending writes the confirmed state guarded by payment_status in the
// WHERE clause, so only one of several concurrent confirmations wins.
func (r *SchoolSubscriptionRepository) ActivateIfPending(ctx context.Context, sub *subscription.SchoolSubscription) (bool, error) {
	model := mappers.SchoolSubscriptionToModel(sub)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SchoolSubscriptionModel{}).
		Where("id = ? AND payment_status = ?", model.ID, vo.PaymentStatusPending.String()).
		Updates(r.mutableColumns(model))
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return false, fmt.Errorf("%w: school already has an active subscription", subscription.ErrInvalidStatusTransition)
		}
		return false, fmt.Errorf("failed to activate school subscription: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *SchoolSubscriptionRepository) mutableColumns(model *models.SchoolSubscriptionModel) map[string]any {
	return map[string]any{
		"status":                          model.Status,
		"payment_status":                  model.PaymentStatus,
		"purchased_at":                    model.PurchasedAt,
		"current_period_ai_usage_minutes": model.CurrentPeriodAIUsageMinutes,
		"last_usage_reset_date":           model.LastUsageResetDate,
		"active_school_id":                model.ActiveSchoolID,
		"version":                         model.Version,
		"updated_at":                      model.UpdatedAt,
	}
}

func (r *SchoolSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*subscription.SchoolSubscription, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id.String()))
}

func (r *SchoolSubscriptionRepository) GetByTransactionCode(ctx context.Context, code string) (*subscription.SchoolSubscription, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("external_transaction_code = ?", code))
}

func (r *SchoolSubscriptionRepository) GetByTransactionCodeForUpdate(ctx context.Context, code string) (*subscription.SchoolSubscription, error) {
	return r.first(db.ForUpdate(db.GetTxFromContext(ctx, r.db)).Where("external_transaction_code = ?", code))
}

func (r *SchoolSubscriptionRepository) GetActiveBySchoolID(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).
		Where("school_id = ? AND status = ?", schoolID.String(), vo.StatusActive.String()).
		Order("start_date DESC"))
}

func (r *SchoolSubscriptionRepository) GetCurrentBySchoolID(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).
		Where("school_id = ? AND payment_status = ?", schoolID.String(), vo.PaymentStatusPaid.String()).
		Order("start_date DESC, created_at DESC"))
}

func (r *SchoolSubscriptionRepository) FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]*subscription.SchoolSubscription, error) {
	var list []models.SchoolSubscriptionModel

	query := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND end_date <= ?", vo.StatusActive.String(), now).
		Order("end_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}
	return mappers.SchoolSubscriptionsToDomain(list)
}

func (r *SchoolSubscriptionRepository) ListBySchoolID(ctx context.Context, schoolID uuid.UUID) ([]*subscription.SchoolSubscription, error) {
	var list []models.SchoolSubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("school_id = ?", schoolID.String()).
		Order("start_date DESC, created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list school subscriptions: %w", err)
	}
	return mappers.SchoolSubscriptionsToDomain(list)
}

func (r *SchoolSubscriptionRepository) first(query *gorm.DB) (*subscription.SchoolSubscription, error) {
	var model models.SchoolSubscriptionModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get school subscription: %w", err)
	}
	return mappers.SchoolSubscriptionToDomain(&model)
}
