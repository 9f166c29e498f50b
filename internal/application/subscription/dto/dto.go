package dto

import "time"

type PlanDTO struct {
	ID                      string    `json:"id"`
	Code                    string    `json:"code"`
	Name                    string    `json:"name"`
	Description             string    `json:"description,omitempty"`
	MonthlyPrice            int64     `json:"monthly_price"`
	YearlyPrice             int64     `json:"yearly_price"`
	YearlyMonthlyEquivalent int64     `json:"yearly_monthly_equivalent"`
	Currency                string    `json:"currency"`
	MaxUsers                int       `json:"max_users"`
	MaxStorageMB            int       `json:"max_storage_mb"`
	MaxAIMinutes            int       `json:"max_ai_minutes"`
	Status                  string    `json:"status"`
	UpdatedAt               time.Time `json:"updated_at"`
}

type SubscriptionDTO struct {
	ID                          string     `json:"id"`
	SchoolID                    string     `json:"school_id"`
	PlanID                      string     `json:"plan_id"`
	BillingCycle                string     `json:"billing_cycle"`
	Status                      string     `json:"status"`
	PaymentStatus               string     `json:"payment_status"`
	StartDate                   time.Time  `json:"start_date"`
	EndDate                     time.Time  `json:"end_date"`
	AmountPaid                  int64      `json:"amount_paid"`
	TransactionID               string     `json:"transaction_id"`
	PurchasedAt                 *time.Time `json:"purchased_at,omitempty"`
	CurrentPeriodAIUsageMinutes int        `json:"current_period_ai_usage_minutes"`
}

// CurrentSubscriptionDTO adds the access state computed at request time.
type CurrentSubscriptionDTO struct {
	SubscriptionDTO
	IsExpired   bool      `json:"is_expired"`
	InGrace     bool      `json:"in_grace_period"`
	GraceEndsAt time.Time `json:"grace_ends_at"`
}

type CheckoutDTO struct {
	CheckoutURL    string    `json:"checkout_url"`
	TransactionID  string    `json:"transaction_id"`
	SubscriptionID string    `json:"subscription_id"`
	OrderCode      string    `json:"order_code"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

type ConfirmationDTO struct {
	SubscriptionID string    `json:"subscription_id"`
	SchoolID       string    `json:"school_id"`
	PlanID         string    `json:"plan_id"`
	BillingCycle   string    `json:"billing_cycle"`
	Status         string    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	AmountPaid     int64     `json:"amount_paid"`
}
