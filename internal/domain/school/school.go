package school

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrSchoolArchived = errors.New("school is archived")

type EntityStatus string

const (
	StatusInactive EntityStatus = "inactive"
	StatusActive   EntityStatus = "active"
	StatusArchived EntityStatus = "archived"
)

func (s EntityStatus) IsValid() bool {
	return s == StatusInactive || s == StatusActive || s == StatusArchived
}

// School is a tenant. Its status is derived from billing: it starts inactive
// and only the first confirmed subscription payment activates it.
type School struct {
	id          uuid.UUID
	name        string
	ownerUserID string
	status      EntityStatus
	activatedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSchool(name, ownerUserID string, now time.Time) (*School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("school name is required")
	}
	if len([]rune(name)) > 200 {
		return nil, fmt.Errorf("school name must be at most 200 characters")
	}
	if ownerUserID == "" {
		return nil, fmt.Errorf("owner user ID is required")
	}

	created := now.UTC()
	return &School{
		id:          uuid.New(),
		name:        name,
		ownerUserID: ownerUserID,
		status:      StatusInactive,
		createdAt:   created,
		updatedAt:   created,
	}, nil
}

func ReconstructSchool(id uuid.UUID, name, ownerUserID string, status EntityStatus, activatedAt *time.Time, createdAt, updatedAt time.Time) (*School, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("school ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid school status: %s", status)
	}
	return &School{
		id:          id,
		name:        name,
		ownerUserID: ownerUserID,
		status:      status,
		activatedAt: activatedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (s *School) ID() uuid.UUID { return s.id }
func (s *School) Name() string { return s.name }
func (s *School) OwnerUserID() string { return s.ownerUserID }
func (s *School) Status() EntityStatus { return s.status }
func (s *School) ActivatedAt() *time.Time { return s.activatedAt }
func (s *School) CreatedAt() time.Time { return s.createdAt }
func (s *School) UpdatedAt() time.Time { return s.updatedAt }

func (s *School) IsActive() bool {
	return s.status == StatusActive
}

// ActivateFromSubscription is the only way into the active state. It reports
// whether the status changed so callers can skip a redundant write.
func (s *School) ActivateFromSubscription(now time.Time) (bool, error) {
	switch s.status {
	case StatusActive:
		return false, nil
	case StatusArchived:
		return false, ErrSchoolArchived
	}
	at := now.UTC()
	s.status = StatusActive
	s.activatedAt = &at
	s.updatedAt = at
	return true, nil
}
