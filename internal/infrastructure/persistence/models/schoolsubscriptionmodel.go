package models

import (
	"time"

	"edulearn/internal/shared/constants"
)

// SchoolSubscriptionModel maps a purchased period. ActiveSchoolID equals
// SchoolID while the row is active and NULL otherwise; its unique index makes a
// second active row for the same school a constraint violation.
type SchoolSubscriptionModel struct {
	ID                          string    `gorm:"primaryKey;size:36"`
	SchoolID                    string    `gorm:"not null;size:36;index:idx_school_subscriptions_school_start,priority:1"`
	PlanID                      string    `gorm:"not null;size:36;index"`
	BillingCycle                string    `gorm:"not null;size:20"`
	Status                      string    `gorm:"not null;size:20;index"`
	PaymentStatus               string    `gorm:"not null;size:20"`
	StartDate                   time.Time `gorm:"not null;index:idx_school_subscriptions_school_start,priority:2"`
	EndDate                     time.Time `gorm:"not null;index"`
	AmountPaid                  int64     `gorm:"not null"`
	TransactionID               string    `gorm:"not null;size:36"`
	ExternalTransactionCode     string    `gorm:"uniqueIndex;not null;size:32"`
	PurchasedAt                 *time.Time
	CurrentPeriodAIUsageMinutes int `gorm:"not null;default:0"`
	LastUsageResetDate          *time.Time
	ActiveSchoolID              *string `gorm:"uniqueIndex;size:36"`
	Version                     int     `gorm:"not null;default:1"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

func (SchoolSubscriptionModel) TableName() string {
	return constants.TableSchoolSubscriptions
}
