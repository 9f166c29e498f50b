package models

import (
	"time"

	"gorm.io/datatypes"

	"edulearn/internal/shared/constants"
)

// SubscriptionPlanModel is the catalog row. Caps is a JSON object so new
// limits do not need a schema change.
type SubscriptionPlanModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Code         string `gorm:"uniqueIndex;not null;size:50"`
	Name         string `gorm:"not null;size:100"`
	Description  string `gorm:"size:500"`
	MonthlyPrice int64  `gorm:"not null"`
	YearlyPrice  int64  `gorm:"not null"`
	Currency     string `gorm:"not null;size:3"`
	Caps         datatypes.JSON
	Status       string `gorm:"not null;size:20;default:active;index"`
	SortOrder    int    `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubscriptionPlanModel) TableName() string {
	return constants.TableSubscriptionPlans
}
