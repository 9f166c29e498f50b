package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutRequest struct {
	PlanID       string `json:"plan_id" binding:"required,uuid"`
	BillingCycle string `json:"billing_cycle" binding:"required,billingcycle"`
}

func TestRegister_BillingCycleTag(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	tests := []struct {
		name    string
		req     checkoutRequest
		wantErr string
	}{
		{"monthly", checkoutRequest{PlanID: "0b8a6d3e-5c2f-4f55-9c1e-6f5a0c3f2e11", BillingCycle: "monthly"}, ""},
		{"yearly upper case", checkoutRequest{PlanID: "0b8a6d3e-5c2f-4f55-9c1e-6f5a0c3f2e11", BillingCycle: "YEARLY"}, ""},
		{"weekly", checkoutRequest{PlanID: "0b8a6d3e-5c2f-4f55-9c1e-6f5a0c3f2e11", BillingCycle: "weekly"}, "billing_cycle must be either monthly or yearly"},
		{"bad plan id", checkoutRequest{PlanID: "basic", BillingCycle: "monthly"}, "plan_id must be a valid UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, Describe(err))
		})
	}
}
