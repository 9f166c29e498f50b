package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edulearn/internal/domain/payment"
	"edulearn/internal/infrastructure/persistence/mappers"
	"edulearn/internal/infrastructure/persistence/models"
	"edulearn/internal/shared/db"
)

type PaymentTransactionRepository struct {
	db *gorm.DB
}

func NewPaymentTransactionRepository(db *gorm.DB) *PaymentTransactionRepository {
	return &PaymentTransactionRepository{db: db}
}

func (r *PaymentTransactionRepository) Create(ctx context.Context, t *payment.PaymentTransaction) error {
	model, err := mappers.PaymentTransactionToModel(t)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}
	return nil
}

func (r *PaymentTransactionRepository) Update(ctx context.Context, t *payment.PaymentTransaction) error {
	model, err := mappers.PaymentTransactionToModel(t)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentTransactionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"status":          model.Status,
			"checkout_url":    model.CheckoutURL,
			"payment_link_id": model.PaymentLinkID,
			"gateway_ref":     model.GatewayRef,
			"failure_reason":  model.FailureReason,
			"paid_at":         model.PaidAt,
			"metadata":        model.Metadata,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment transaction: %w", result.Error)
	}

	// RowsAffected may be 0 when nothing changed.
	return nil
}

func (r *PaymentTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.PaymentTransaction, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *PaymentTransactionRepository) GetByExternalCode(ctx context.Context, code string) (*payment.PaymentTransaction, error) {
	return r.first(ctx, "external_code = ?", code)
}

func (r *PaymentTransactionRepository) first(ctx context.Context, query string, args ...any) (*payment.PaymentTransaction, error) {
	var model models.PaymentTransactionModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}
	return mappers.PaymentTransactionToDomain(&model)
}
