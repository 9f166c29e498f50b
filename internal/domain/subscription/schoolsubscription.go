package subscription

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "edulearn/internal/domain/subscription/valueobjects"
)

// SchoolSubscription is one purchased period of a plan for a school. A school
// accumulates many rows over time but at most one is active.
type SchoolSubscription struct {
	id                          uuid.UUID
	schoolID                    uuid.UUID
	planID                      uuid.UUID
	billingCycle                vo.BillingCycle
	status                      vo.SubscriptionStatus
	paymentStatus               vo.PaymentStatus
	startDate                   time.Time
	endDate                     time.Time
	amountPaid                  int64
	transactionID               uuid.UUID
	externalTransactionCode     string
	purchasedAt                 *time.Time
	currentPeriodAIUsageMinutes int
	lastUsageResetDate          *time.Time
	version                     int
	createdAt                   time.Time
	updatedAt                   time.Time
}

// NewPendingSubscription opens an unpaid period starting at now. The end date is
// derived from the billing cycle and cannot be set independently.
func NewPendingSubscription(
	schoolID, planID uuid.UUID,
	cycle vo.BillingCycle,
	amount int64,
	transactionID uuid.UUID,
	externalCode string,
	now time.Time,
) (*SchoolSubscription, error) {
	if schoolID == uuid.Nil {
		return nil, fmt.Errorf("school ID is required")
	}
	if planID == uuid.Nil {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !cycle.IsValid() {
		return nil, vo.ErrInvalidBillingCycle
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if transactionID == uuid.Nil || externalCode == "" {
		return nil, fmt.Errorf("payment transaction reference is required")
	}

	start := now.UTC()
	return &SchoolSubscription{
		id:                      uuid.New(),
		schoolID:                schoolID,
		planID:                  planID,
		billingCycle:            cycle,
		status:                  vo.StatusPending,
		paymentStatus:           vo.PaymentStatusPending,
		startDate:               start,
		endDate:                 cycle.PeriodEnd(start),
		amountPaid:              amount,
		transactionID:           transactionID,
		externalTransactionCode: externalCode,
		version:                 1,
		createdAt:               start,
		updatedAt:               start,
	}, nil
}

func ReconstructSchoolSubscription(
	id, schoolID, planID uuid.UUID,
	cycle vo.BillingCycle,
	status vo.SubscriptionStatus,
	paymentStatus vo.PaymentStatus,
	startDate, endDate time.Time,
	amountPaid int64,
	transactionID uuid.UUID,
	externalCode string,
	purchasedAt *time.Time,
	aiUsageMinutes int,
	lastUsageResetDate *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*SchoolSubscription, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("subscription ID cannot be empty")
	}
	if schoolID == uuid.Nil {
		return nil, fmt.Errorf("school ID is required")
	}
	if !cycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", cycle)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", paymentStatus)
	}

	return &SchoolSubscription{
		id:                          id,
		schoolID:                    schoolID,
		planID:                      planID,
		billingCycle:                cycle,
		status:                      status,
		paymentStatus:               paymentStatus,
		startDate:                   startDate,
		endDate:                     endDate,
		amountPaid:                  amountPaid,
		transactionID:               transactionID,
		externalTransactionCode:     externalCode,
		purchasedAt:                 purchasedAt,
		currentPeriodAIUsageMinutes: aiUsageMinutes,
		lastUsageResetDate:          lastUsageResetDate,
		version:                     version,
		createdAt:                   createdAt,
		updatedAt:                   updatedAt,
	}, nil
}

func (s *SchoolSubscription) ID() uuid.UUID { return s.id }
func (s *SchoolSubscription) SchoolID() uuid.UUID { return s.schoolID }
func (s *SchoolSubscription) PlanID() uuid.UUID { return s.planID }
func (s *SchoolSubscription) BillingCycle() vo.BillingCycle { return s.billingCycle }
func (s *SchoolSubscription) Status() vo.SubscriptionStatus { return s.status }
func (s *SchoolSubscription) PaymentStatus() vo.PaymentStatus { return s.paymentStatus }
func (s *SchoolSubscription) StartDate() time.Time { return s.startDate }
func (s *SchoolSubscription) EndDate() time.Time { return s.endDate }
func (s *SchoolSubscription) AmountPaid() int64 { return s.amountPaid }
func (s *SchoolSubscription) TransactionID() uuid.UUID { return s.transactionID }
func (s *SchoolSubscription) ExternalTransactionCode() string { return s.externalTransactionCode }
func (s *SchoolSubscription) PurchasedAt() *time.Time { return s.purchasedAt }
func (s *SchoolSubscription) CurrentPeriodAIUsageMinutes() int { return s.currentPeriodAIUsageMinutes }
func (s *SchoolSubscription) LastUsageResetDate() *time.Time { return s.lastUsageResetDate }
func (s *SchoolSubscription) Version() int { return s.version }
func (s *SchoolSubscription) CreatedAt() time.Time { return s.createdAt }
func (s *SchoolSubscription) UpdatedAt() time.Time { return s.updatedAt }

func (s *SchoolSubscription) IsActive() bool {
	return s.status == vo.StatusActive
}

// IsExpiredAt reports whether the paid period has ended at t, regardless of
// whether the status column has caught up yet.
func (s *SchoolSubscription) IsExpiredAt(t time.Time) bool {
	return !s.endDate.After(t)
}

// HasSameOffering reports whether a new purchase would buy exactly this plan and cycle again.
func (s *SchoolSubscription) HasSameOffering(planID uuid.UUID, cycle vo.BillingCycle) bool {
	return s.planID == planID && s.billingCycle == cycle
}

// ConfirmPayment moves a pending row to active/paid. The paid period keeps the
// start date set at checkout.
func (s *SchoolSubscription) ConfirmPayment(now time.Time) error {
	if s.paymentStatus.IsPaid() {
		return ErrPaymentAlreadyConfirmed
	}
	if s.paymentStatus != vo.PaymentStatusPending || !s.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("%w: cannot activate subscription in status %s/%s",
			ErrInvalidStatusTransition, s.status, s.paymentStatus)
	}

	paidAt := now.UTC()
	s.status = vo.StatusActive
	s.paymentStatus = vo.PaymentStatusPaid
	s.purchasedAt = &paidAt
	s.lastUsageResetDate = &paidAt
	s.currentPeriodAIUsageMinutes = 0
	s.updatedAt = paidAt
	s.version++
	return nil
}

// Expire ends an active row. Calling it on an already expired row is a no-op.
func (s *SchoolSubscription) Expire(now time.Time) error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return fmt.Errorf("%w: cannot expire subscription in status %s",
			ErrInvalidStatusTransition, s.status)
	}

	s.status = vo.StatusExpired
	s.updatedAt = now.UTC()
	s.version++
	return nil
}
