package valueobjects

import "fmt"

// UsageCaps limits what a school may consume on a plan. Zero means unlimited.
type UsageCaps struct {
	MaxUsers     int `json:"max_users" yaml:"max_users"`
	MaxStorageMB int `json:"max_storage_mb" yaml:"max_storage_mb"`
	MaxAIMinutes int `json:"max_ai_minutes" yaml:"max_ai_minutes"`
}

func NewUsageCaps(maxUsers, maxStorageMB, maxAIMinutes int) (UsageCaps, error) {
	if maxUsers < 0 || maxStorageMB < 0 || maxAIMinutes < 0 {
		return UsageCaps{}, fmt.Errorf("usage caps cannot be negative")
	}
	return UsageCaps{MaxUsers: maxUsers, MaxStorageMB: maxStorageMB, MaxAIMinutes: maxAIMinutes}, nil
}

func (c UsageCaps) AllowsAIMinutes(used int) bool {
	return c.MaxAIMinutes == 0 || used < c.MaxAIMinutes
}
