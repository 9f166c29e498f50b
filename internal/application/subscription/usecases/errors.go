package usecases

import (
	"errors"

	"edulearn/internal/domain/payment"
	"edulearn/internal/domain/school"
	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	apperrors "edulearn/internal/shared/errors"
)

// toAppError translates domain failures into boundary errors. Anything it does
// not recognise is returned unchanged and surfaces as a 500.
func toAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, subscription.ErrSchoolNotFound):
		return apperrors.NewNotFoundError("School not found.").WithCause(err)
	case errors.Is(err, subscription.ErrPlanNotFound):
		return apperrors.NewNotFoundError("Subscription plan not found.").WithCause(err)
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return apperrors.NewNotFoundError("School subscription not found.").WithCause(err)
	case errors.Is(err, subscription.ErrPlanNotActive):
		return apperrors.NewValidationError("Subscription plan is no longer available.").WithCause(err)
	case errors.Is(err, vo.ErrInvalidBillingCycle):
		return apperrors.NewValidationError("Billing cycle must be monthly or yearly.").WithCause(err)
	case errors.Is(err, subscription.ErrSubscriptionAlreadyExists):
		return apperrors.NewConflictError("School already has an active subscription for this plan and billing cycle.").WithCause(err)
	case errors.Is(err, subscription.ErrDowngradeNotAllowed):
		return apperrors.NewConflictError("Downgrading is not allowed. Wait for the current subscription to expire.").WithCause(err)
	case errors.Is(err, subscription.ErrPaymentAlreadyConfirmed), errors.Is(err, payment.ErrTransactionAlreadyFinal):
		return apperrors.NewConflictError("Payment has already been confirmed.").WithCause(err)
	case errors.Is(err, subscription.ErrInvalidStatusTransition):
		return apperrors.NewConflictError("Subscription cannot change to the requested state.").WithCause(err)
	case errors.Is(err, school.ErrSchoolArchived):
		return apperrors.NewConflictError("School is archived.").WithCause(err)
	case errors.Is(err, subscription.ErrPaymentFailed):
		return apperrors.NewPaymentRequiredError("Payment was not successful.").WithCause(err)
	}
	return err
}
