package payment

import (
	"context"

	"github.com/google/uuid"
)

type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *PaymentTransaction) error
	Update(ctx context.Context, tx *PaymentTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentTransaction, error)
	GetByExternalCode(ctx context.Context, code string) (*PaymentTransaction, error)
}
