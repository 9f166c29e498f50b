package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"edulearn/internal/domain/payment"
	vo "edulearn/internal/domain/payment/valueobjects"
	"edulearn/internal/infrastructure/persistence/models"
)

func PaymentTransactionToModel(t *payment.PaymentTransaction) (*models.PaymentTransactionModel, error) {
	model := &models.PaymentTransactionModel{
		ID:            t.ID().String(),
		OwnerUserID:   t.OwnerUserID(),
		Purpose:       t.Purpose().String(),
		Method:        t.Method().String(),
		Status:        t.Status().String(),
		Amount:        t.Amount().Amount(),
		Currency:      t.Amount().Currency(),
		ExternalCode:  t.ExternalCode(),
		Description:   t.Description(),
		CheckoutURL:   t.CheckoutURL(),
		PaymentLinkID: t.PaymentLinkID(),
		BuyerEmail:    t.BuyerEmail(),
		GatewayRef:    t.GatewayRef(),
		FailureReason: t.FailureReason(),
		PaidAt:        t.PaidAt(),
		Version:       t.Version(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}

	if md := t.Metadata(); len(md) > 0 {
		raw, err := json.Marshal(md)
		if err != nil {
			return nil, fmt.Errorf("failed to encode transaction metadata: %w", err)
		}
		model.Metadata = datatypes.JSON(raw)
	}

	return model, nil
}

func PaymentTransactionToDomain(model *models.PaymentTransactionModel) (*payment.PaymentTransaction, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id %q: %w", model.ID, err)
	}

	metadata := make(map[string]any)
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("invalid metadata for transaction %s: %w", model.ExternalCode, err)
		}
	}

	return payment.ReconstructPaymentTransaction(
		id,
		model.OwnerUserID,
		vo.PaymentPurpose(model.Purpose),
		vo.PaymentMethod(model.Method),
		vo.PaymentStatus(model.Status),
		vo.NewMoney(model.Amount, model.Currency),
		model.ExternalCode, model.Description,
		model.CheckoutURL, model.PaymentLinkID,
		model.BuyerEmail,
		model.GatewayRef, model.FailureReason,
		model.PaidAt,
		metadata,
		model.Version,
		model.CreatedAt, model.UpdatedAt,
	)
}
