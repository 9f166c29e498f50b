package subscription

import "errors"

var (
	ErrSchoolNotFound            = errors.New("school not found")
	ErrPlanNotFound              = errors.New("subscription plan not found")
	ErrPlanNotActive             = errors.New("subscription plan is not active")
	ErrSubscriptionAlreadyExists = errors.New("school already has an active subscription for this plan and billing cycle")
	ErrDowngradeNotAllowed       = errors.New("downgrading is not allowed while the current subscription is active")
	ErrSubscriptionNotFound      = errors.New("school subscription not found")
	ErrPaymentAlreadyConfirmed   = errors.New("payment has already been confirmed")
	ErrPaymentFailed             = errors.New("payment was not successful")
	ErrInvalidStatusTransition   = errors.New("invalid subscription status transition")
)
