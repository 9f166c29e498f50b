package subscription

import (
	"time"

	vo "edulearn/internal/domain/subscription/valueobjects"
)

type AccessOutcome int

const (
	// AccessAllowed means the paid period covers now.
	AccessAllowed AccessOutcome = iota
	// AccessAllowedInGrace means the period ended but read access is still granted.
	AccessAllowedInGrace
	// AccessPaymentRequired means the school must renew before this request proceeds.
	AccessPaymentRequired
)

type AccessDecision struct {
	Outcome        AccessOutcome
	ExpiredFor     time.Duration
	GraceRemaining time.Duration
}

func (d AccessDecision) Allowed() bool {
	return d.Outcome != AccessPaymentRequired
}

// DecideAccess applies the expiry policy to the school's current subscription.
// Writes are never granted once EndDate has passed; reads survive for
// gracePeriod after it, inclusive of the boundary.
func DecideAccess(sub *SchoolSubscription, required vo.AccessLevel, now time.Time, gracePeriod time.Duration) AccessDecision {
	if required == vo.AccessNone || sub.EndDate().After(now) {
		return AccessDecision{Outcome: AccessAllowed}
	}

	elapsed := now.Sub(sub.EndDate())
	if required == vo.AccessReadOnly && elapsed <= gracePeriod {
		return AccessDecision{
			Outcome:        AccessAllowedInGrace,
			ExpiredFor:     elapsed,
			GraceRemaining: gracePeriod - elapsed,
		}
	}

	return AccessDecision{Outcome: AccessPaymentRequired, ExpiredFor: elapsed}
}
