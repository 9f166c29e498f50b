package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"edulearn/internal/domain/subscription"
)

// TransactionRunner is implemented by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CurrentSubscriptionCache holds the subscription the access middleware reads
// on every gated request. Get returns nil on a miss.
type CurrentSubscriptionCache interface {
	Get(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error)
	Set(ctx context.Context, sub *subscription.SchoolSubscription) error
	Invalidate(ctx context.Context, schoolID uuid.UUID) error
}

type ReceiptNotifier interface {
	SendPaymentReceipt(ctx context.Context, receipt PaymentReceipt) error
}

type PaymentReceipt struct {
	To           string
	SchoolName   string
	PlanName     string
	BillingCycle string
	Amount       int64
	Currency     string
	OrderCode    string
	PaidAt       time.Time
	StartDate    time.Time
	EndDate      time.Time
}
