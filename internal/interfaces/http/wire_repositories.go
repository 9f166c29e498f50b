package http

import (
	"gorm.io/gorm"

	"edulearn/internal/domain/payment"
	"edulearn/internal/domain/school"
	"edulearn/internal/domain/subscription"
	"edulearn/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	schoolRepo       school.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.SchoolSubscriptionRepository
	transactionRepo  payment.PaymentTransactionRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		schoolRepo:       repository.NewSchoolRepository(db),
		planRepo:         repository.NewPlanRepository(db),
		subscriptionRepo: repository.NewSchoolSubscriptionRepository(db),
		transactionRepo:  repository.NewPaymentTransactionRepository(db),
	}
}
