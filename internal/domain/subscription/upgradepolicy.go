package subscription

import (
	vo "edulearn/internal/domain/subscription/valueobjects"
)

// EvaluatePlanChange decides whether a school holding current (on currentPlan)
// may buy newPlan on newCycle. Value is compared by monthly-equivalent price:
// switching to something strictly cheaper per month is a downgrade and must
// wait for the current period to lapse. Equal value is allowed.
func EvaluatePlanChange(current *SchoolSubscription, currentPlan, newPlan *SubscriptionPlan, newCycle vo.BillingCycle) error {
	if current == nil || currentPlan == nil {
		return nil
	}

	if current.HasSameOffering(newPlan.ID(), newCycle) {
		return ErrSubscriptionAlreadyExists
	}

	// Both sides are scaled by 12 so yearly ÷ 12 never truncates.
	if newPlan.annualizedPrice(newCycle) < currentPlan.annualizedPrice(current.BillingCycle()) {
		return ErrDowngradeNotAllowed
	}

	return nil
}
