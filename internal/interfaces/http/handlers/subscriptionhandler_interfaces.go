package handlers

import (
	"context"

	"github.com/google/uuid"

	schoolusecases "edulearn/internal/application/school/usecases"
	"edulearn/internal/application/subscription/usecases"
	"edulearn/internal/domain/subscription"
)

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*usecases.CreateSubscriptionResult, error)
}

type getCurrentSubscriptionUseCase interface {
	Execute(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error)
}

type confirmPaymentReturnUseCase interface {
	Execute(ctx context.Context, cmd usecases.ConfirmPaymentReturnCommand) (*usecases.ConfirmPaymentReturnResult, error)
}

type schoolOwnerLookup interface {
	ExecuteByOwner(ctx context.Context, ownerUserID string) (*schoolusecases.SchoolResult, error)
}
