package mappers

import (
	"fmt"

	"github.com/google/uuid"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/infrastructure/persistence/models"
)

func SchoolSubscriptionToModel(s *subscription.SchoolSubscription) *models.SchoolSubscriptionModel {
	model := &models.SchoolSubscriptionModel{
		ID:                          s.ID().String(),
		SchoolID:                    s.SchoolID().String(),
		PlanID:                      s.PlanID().String(),
		BillingCycle:                s.BillingCycle().String(),
		Status:                      s.Status().String(),
		PaymentStatus:               s.PaymentStatus().String(),
		StartDate:                   s.StartDate(),
		EndDate:                     s.EndDate(),
		AmountPaid:                  s.AmountPaid(),
		TransactionID:               s.TransactionID().String(),
		ExternalTransactionCode:     s.ExternalTransactionCode(),
		PurchasedAt:                 s.PurchasedAt(),
		CurrentPeriodAIUsageMinutes: s.CurrentPeriodAIUsageMinutes(),
		LastUsageResetDate:          s.LastUsageResetDate(),
		Version:                     s.Version(),
		CreatedAt:                   s.CreatedAt(),
		UpdatedAt:                   s.UpdatedAt(),
	}
	model.ActiveSchoolID = ActiveSchoolKey(s)
	return model
}

// ActiveSchoolKey returns the value of the one-active-per-school column.
func ActiveSchoolKey(s *subscription.SchoolSubscription) *string {
	if !s.IsActive() {
		return nil
	}
	key := s.SchoolID().String()
	return &key
}

func SchoolSubscriptionToDomain(model *models.SchoolSubscriptionModel) (*subscription.SchoolSubscription, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid subscription id %q: %w", model.ID, err)
	}
	schoolID, err := uuid.Parse(model.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("invalid school id %q: %w", model.SchoolID, err)
	}
	planID, err := uuid.Parse(model.PlanID)
	if err != nil {
		return nil, fmt.Errorf("invalid plan id %q: %w", model.PlanID, err)
	}
	transactionID, err := uuid.Parse(model.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id %q: %w", model.TransactionID, err)
	}

	return subscription.ReconstructSchoolSubscription(
		id, schoolID, planID,
		vo.BillingCycle(model.BillingCycle),
		vo.SubscriptionStatus(model.Status),
		vo.PaymentStatus(model.PaymentStatus),
		model.StartDate, model.EndDate,
		model.AmountPaid,
		transactionID,
		model.ExternalTransactionCode,
		model.PurchasedAt,
		model.CurrentPeriodAIUsageMinutes,
		model.LastUsageResetDate,
		model.Version,
		model.CreatedAt, model.UpdatedAt,
	)
}

func SchoolSubscriptionsToDomain(list []models.SchoolSubscriptionModel) ([]*subscription.SchoolSubscription, error) {
	result := make([]*subscription.SchoolSubscription, 0, len(list))
	for i := range list {
		sub, err := SchoolSubscriptionToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, nil
}
