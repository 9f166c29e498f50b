package http

import (
	schoolUsecases "edulearn/internal/application/school/usecases"
	subscriptionUsecases "edulearn/internal/application/subscription/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// School
	createSchoolUC *schoolUsecases.CreateSchoolUseCase
	getSchoolUC    *schoolUsecases.GetSchoolUseCase

	// Subscription
	createSubscriptionUC     *subscriptionUsecases.CreateSubscriptionUseCase
	confirmPaymentReturnUC   *subscriptionUsecases.ConfirmPaymentReturnUseCase
	getCurrentSubscriptionUC *subscriptionUsecases.GetCurrentSubscriptionUseCase

	// Plan
	listPlansUC *subscriptionUsecases.ListPlansUseCase
}
