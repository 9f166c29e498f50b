package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", "edulearn", 15)

	token, err := svc.Generate(Identity{
		UserID:   "admin-1",
		Roles:    []string{"school_admin"},
		SchoolID: "0b6f1f2e-8a54-4d43-9f0e-3c2f4f3b9a10",
		Email:    "admin@example.com",
	})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, []string{"school_admin"}, claims.Roles)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "edulearn", 15)
	good, err := svc.Generate(Identity{UserID: "u1"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *JWTService
		token string
	}{
		{"wrong secret", NewJWTService("other-secret", "edulearn", 15), good},
		{"wrong issuer", NewJWTService("test-secret", "someone-else", 15), good},
		{"garbage", svc, "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Verify(tt.token)
			assert.Error(t, err)
		})
	}

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService("test-secret", "edulearn", -5)
		token, err := expired.Generate(Identity{UserID: "u1"})
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("missing user id", func(t *testing.T) {
		token, err := svc.Generate(Identity{})
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorContains(t, err, "user_id")
	})
}
