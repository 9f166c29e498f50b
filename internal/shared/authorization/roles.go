// Package authorization holds the closed set of platform roles and what each
// one is allowed to do. Call sites ask for a capability, never for a role name.
package authorization

import "strings"

type UserRole string

const (
	RoleSuperAdmin  UserRole = "super_admin"
	RoleSchoolAdmin UserRole = "school_admin"
	RoleTeacher     UserRole = "teacher"
	RoleStudent     UserRole = "student"
	RoleParent      UserRole = "parent"
)

type Capability string

const (
	// CapBypassSubscriptionCheck skips every subscription gate.
	CapBypassSubscriptionCheck Capability = "bypass_subscription_check"
	// CapBootstrapSchool allows creating a school before one is associated.
	CapBootstrapSchool Capability = "bootstrap_school"
	// CapManageSubscription allows purchasing or upgrading the school plan.
	CapManageSubscription Capability = "manage_subscription"
	CapViewSubscription   Capability = "view_subscription"
)

var capabilityTable = map[UserRole]map[Capability]bool{
	RoleSuperAdmin: {
		CapBypassSubscriptionCheck: true,
		CapManageSubscription:      true,
		CapViewSubscription:        true,
	},
	RoleSchoolAdmin: {
		CapBootstrapSchool:    true,
		CapManageSubscription: true,
		CapViewSubscription:   true,
	},
	RoleTeacher: {
		CapViewSubscription: true,
	},
	RoleStudent: {},
	RoleParent:  {},
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := capabilityTable[r]
	return ok
}

func (r UserRole) Can(c Capability) bool {
	return capabilityTable[r][c]
}

// ParseUserRole normalises a claim value. Unknown roles are reported as invalid
// rather than mapped to a default.
func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(strings.ToLower(strings.TrimSpace(s)))
	return role, role.IsValid()
}

// RoleSet is the caller's resolved roles. Unknown claim values are dropped.
type RoleSet []UserRole

func NewRoleSet(raw []string) RoleSet {
	set := make(RoleSet, 0, len(raw))
	for _, s := range raw {
		if role, ok := ParseUserRole(s); ok {
			set = append(set, role)
		}
	}
	return set
}

// Can reports whether any role in the set grants the capability.
func (s RoleSet) Can(c Capability) bool {
	for _, r := range s {
		if r.Can(c) {
			return true
		}
	}
	return false
}

func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.String()
	}
	return out
}
