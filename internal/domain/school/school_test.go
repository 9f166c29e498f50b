package school

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchool(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s, err := NewSchool("  Trường THCS Nguyễn Du ", "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, "Trường THCS Nguyễn Du", s.Name())
	assert.Equal(t, StatusInactive, s.Status())
	assert.Nil(t, s.ActivatedAt())

	_, err = NewSchool("   ", "user-1", now)
	assert.Error(t, err)

	_, err = NewSchool(strings.Repeat("a", 201), "user-1", now)
	assert.Error(t, err)

	_, err = NewSchool("School", "", now)
	assert.Error(t, err)
}

func TestSchool_ActivateFromSubscription(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewSchool("School", "user-1", now)
	require.NoError(t, err)

	changed, err := s.ActivateFromSubscription(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, s.IsActive())

	changed, err = s.ActivateFromSubscription(now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now, *s.ActivatedAt())

	archived, err := ReconstructSchool(uuid.New(), "Old", "user-2", StatusArchived, nil, now, now)
	require.NoError(t, err)
	_, err = archived.ActivateFromSubscription(now)
	assert.ErrorIs(t, err, ErrSchoolArchived)
}
