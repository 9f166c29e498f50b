package models

import (
	"time"

	"gorm.io/datatypes"

	"edulearn/internal/shared/constants"
)

type PaymentTransactionModel struct {
	ID            string  `gorm:"primaryKey;size:36"`
	OwnerUserID   string  `gorm:"not null;size:64;index"`
	Purpose       string  `gorm:"not null;size:32"`
	Method        string  `gorm:"not null;size:20"`
	Status        string  `gorm:"not null;size:20;index"`
	Amount        int64   `gorm:"not null"`
	Currency      string  `gorm:"not null;size:3"`
	ExternalCode  string  `gorm:"uniqueIndex;not null;size:32"`
	Description   string  `gorm:"size:255"`
	CheckoutURL   *string `gorm:"type:text"`
	PaymentLinkID *string `gorm:"size:128"`
	BuyerEmail    string  `gorm:"size:255"`
	GatewayRef    *string `gorm:"size:128"`
	FailureReason *string `gorm:"size:500"`
	PaidAt        *time.Time
	Metadata      datatypes.JSON
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaymentTransactionModel) TableName() string {
	return constants.TablePaymentTransactions
}
