package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role UserRole
		cap  Capability
		want bool
	}{
		{RoleSuperAdmin, CapBypassSubscriptionCheck, true},
		{RoleSchoolAdmin, CapBypassSubscriptionCheck, false},
		{RoleSchoolAdmin, CapBootstrapSchool, true},
		{RoleSchoolAdmin, CapManageSubscription, true},
		{RoleTeacher, CapManageSubscription, false},
		{RoleTeacher, CapViewSubscription, true},
		{RoleStudent, CapBootstrapSchool, false},
		{RoleParent, CapViewSubscription, false},
		{UserRole("janitor"), CapViewSubscription, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Can(tt.cap))
		})
	}
}

func TestNewRoleSet(t *testing.T) {
	set := NewRoleSet([]string{" School_Admin ", "unknown", "teacher"})

	assert.Equal(t, RoleSet{RoleSchoolAdmin, RoleTeacher}, set)
	assert.True(t, set.Can(CapBootstrapSchool))
	assert.False(t, set.Can(CapBypassSubscriptionCheck))
	assert.Equal(t, []string{"school_admin", "teacher"}, set.Strings())
}
