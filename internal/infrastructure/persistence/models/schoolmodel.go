package models

import (
	"time"

	"edulearn/internal/shared/constants"
)

type SchoolModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null;size:200"`
	OwnerUserID string `gorm:"uniqueIndex;not null;size:64"`
	Status      string `gorm:"not null;size:20;default:inactive"`
	ActivatedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SchoolModel) TableName() string {
	return constants.TableSchools
}
