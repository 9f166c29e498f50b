package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingCycle(t *testing.T) {
	tests := []struct {
		input   string
		want    BillingCycle
		wantErr bool
	}{
		{input: "monthly", want: BillingCycleMonthly},
		{input: " Yearly ", want: BillingCycleYearly},
		{input: "MONTHLY", want: BillingCycleMonthly},
		{input: "weekly", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBillingCycle(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBillingCycle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBillingCycle_PeriodEnd(t *testing.T) {
	start := time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(30*24*time.Hour), BillingCycleMonthly.PeriodEnd(start))
	assert.Equal(t, start.Add(365*24*time.Hour), BillingCycleYearly.PeriodEnd(start))
}

func TestSubscriptionStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusActive))
	assert.True(t, StatusActive.CanTransitionTo(StatusExpired))
	assert.False(t, StatusPending.CanTransitionTo(StatusExpired))
	assert.False(t, StatusExpired.CanTransitionTo(StatusActive))
	assert.False(t, StatusActive.CanTransitionTo(StatusPending))
}

func TestNewUsageCaps(t *testing.T) {
	caps, err := NewUsageCaps(100, 0, 60)
	require.NoError(t, err)
	assert.True(t, caps.AllowsAIMinutes(59))
	assert.False(t, caps.AllowsAIMinutes(60))

	unlimited, err := NewUsageCaps(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, unlimited.AllowsAIMinutes(1_000_000))

	_, err = NewUsageCaps(-1, 0, 0)
	assert.Error(t, err)
}
