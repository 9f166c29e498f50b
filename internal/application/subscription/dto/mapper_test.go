package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
)

func TestSubscriptionMapper_Plans(t *testing.T) {
	m := NewSubscriptionMapper()
	caps, err := vo.NewUsageCaps(50, 1024, 120)
	require.NoError(t, err)
	plan, err := subscription.NewSubscriptionPlan("basic", "Basic", "", 100_000, 1_000_000, "VND", caps, 1)
	require.NoError(t, err)

	got := m.Plans.ToDTOList([]*subscription.SubscriptionPlan{plan})

	require.Len(t, got, 1)
	assert.Equal(t, plan.ID().String(), got[0].ID)
	assert.Equal(t, int64(83_333), got[0].YearlyMonthlyEquivalent)
	assert.Equal(t, 50, got[0].MaxUsers)
	assert.Equal(t, "active", got[0].Status)
}

func TestSubscriptionMapper_ToCurrentDTO(t *testing.T) {
	m := NewSubscriptionMapper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sub, err := subscription.NewPendingSubscription(uuid.New(), uuid.New(), vo.BillingCycleMonthly, 100_000, uuid.New(), "123", start)
	require.NoError(t, err)
	require.NoError(t, sub.ConfirmPayment(start))
	grace := 14 * 24 * time.Hour

	inGrace := m.ToCurrentDTO(sub, sub.EndDate().Add(48*time.Hour), grace)
	assert.True(t, inGrace.IsExpired)
	assert.True(t, inGrace.InGrace)
	assert.Equal(t, sub.EndDate().Add(grace), inGrace.GraceEndsAt)
	assert.Equal(t, "paid", inGrace.PaymentStatus)

	active := m.ToCurrentDTO(sub, start.Add(time.Hour), grace)
	assert.False(t, active.IsExpired)
	assert.False(t, active.InGrace)
}
