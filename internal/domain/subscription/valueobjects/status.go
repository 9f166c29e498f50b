package valueobjects

type SubscriptionStatus string

const (
	StatusPending SubscriptionStatus = "pending"
	StatusActive  SubscriptionStatus = "active"
	StatusExpired SubscriptionStatus = "expired"
)

// subscriptionTransitions is the whole lifecycle. Expired is terminal; a lapsed
// school starts over with a new pending row.
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusPending: {StatusActive},
	StatusActive:  {StatusExpired},
	StatusExpired: {},
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	_, ok := subscriptionTransitions[s]
	return ok
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	return p == PaymentStatusPending || p == PaymentStatusPaid || p == PaymentStatusFailed
}

func (p PaymentStatus) IsPaid() bool {
	return p == PaymentStatusPaid
}
