package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SchoolSubscriptionRepository interface {
	Create(ctx context.Context, sub *SchoolSubscription) error
	Update(ctx context.Context, sub *SchoolSubscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*SchoolSubscription, error)
	GetByTransactionCode(ctx context.Context, code string) (*SchoolSubscription, error)
	// GetByTransactionCodeForUpdate locks the row for the surrounding transaction.
	GetByTransactionCodeForUpdate(ctx context.Context, code string) (*SchoolSubscription, error)
	// GetActiveBySchoolID returns the most recent row in status active, or nil.
	GetActiveBySchoolID(ctx context.Context, schoolID uuid.UUID) (*SchoolSubscription, error)
	// GetCurrentBySchoolID returns the latest paid row by start date, active or
	// expired, or nil. Unpaid checkouts never count as current.
	GetCurrentBySchoolID(ctx context.Context, schoolID uuid.UUID) (*SchoolSubscription, error)
	// ActivateIfPending persists a confirmed row only if it is still pending in
	// storage. It returns false when another caller confirmed it first.
	ActivateIfPending(ctx context.Context, sub *SchoolSubscription) (bool, error)
	FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]*SchoolSubscription, error)
	ListBySchoolID(ctx context.Context, schoolID uuid.UUID) ([]*SchoolSubscription, error)
}

type PlanRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SubscriptionPlan, error)
	GetByCode(ctx context.Context, code string) (*SubscriptionPlan, error)
	ListActive(ctx context.Context) ([]*SubscriptionPlan, error)
	Upsert(ctx context.Context, plan *SubscriptionPlan) error
}
