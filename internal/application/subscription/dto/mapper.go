package dto

import (
	"time"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/shared/mapper"
)

// SubscriptionMapper converts domain entities to response DTOs. Build one with
// NewSubscriptionMapper and inject it; handlers and use cases share the instance.
type SubscriptionMapper struct {
	Plans         *mapper.Mapper[*subscription.SubscriptionPlan, *PlanDTO]
	Subscriptions *mapper.Mapper[*subscription.SchoolSubscription, *SubscriptionDTO]
}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{
		Plans:         mapper.New(planToDTO),
		Subscriptions: mapper.New(subscriptionToDTO),
	}
}

// ToCurrentDTO decorates the subscription with its access state at now.
func (m *SubscriptionMapper) ToCurrentDTO(sub *subscription.SchoolSubscription, now time.Time, gracePeriod time.Duration) *CurrentSubscriptionDTO {
	decision := subscription.DecideAccess(sub, vo.AccessReadOnly, now, gracePeriod)
	return &CurrentSubscriptionDTO{
		SubscriptionDTO: *m.Subscriptions.ToDTO(sub),
		IsExpired:       sub.IsExpiredAt(now),
		InGrace:         decision.Outcome == subscription.AccessAllowedInGrace,
		GraceEndsAt:     sub.EndDate().Add(gracePeriod),
	}
}

func planToDTO(p *subscription.SubscriptionPlan) *PlanDTO {
	caps := p.Caps()
	return &PlanDTO{
		ID:                      p.ID().String(),
		Code:                    p.Code(),
		Name:                    p.Name(),
		Description:             p.Description(),
		MonthlyPrice:            p.MonthlyPrice(),
		YearlyPrice:             p.YearlyPrice(),
		YearlyMonthlyEquivalent: p.MonthlyEquivalent(vo.BillingCycleYearly),
		Currency:                p.Currency(),
		MaxUsers:                caps.MaxUsers,
		MaxStorageMB:            caps.MaxStorageMB,
		MaxAIMinutes:            caps.MaxAIMinutes,
		Status:                  p.Status().String(),
		UpdatedAt:               p.UpdatedAt(),
	}
}

func subscriptionToDTO(s *subscription.SchoolSubscription) *SubscriptionDTO {
	return &SubscriptionDTO{
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
		PurchasedAt:                 s.PurchasedAt(),
		CurrentPeriodAIUsageMinutes: s.CurrentPeriodAIUsageMinutes(),
	}
}
