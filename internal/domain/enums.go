package domain

import (
	"fmt"
	"strings"
)

// Role is the position a user holds on an emergency. Persisted as its
// display string; filtering relies on exact matches, so callers must go
// through the typed constants rather than literals.
type Role string

const (
	RoleSIMSRemoteCoordinator            Role = "SIMS Remote Coordinator"
	RoleInformationManagementCoordinator Role = "Information Management Coordinator"
	RoleInformationAnalyst               Role = "Information Analyst"
	RolePrimaryDataCollectionOfficer     Role = "Primary Data Collection Officer"
	RoleMappingVisualizationOfficer      Role = "Mapping and Visualization Officer"
	RoleRemoteIMSupport                  Role = "Remote IM Support"

	// Display-only roles; no dashboard group selects them.
	RoleFieldCoordinator Role = "Field Coordinator"
	RoleRemoteAnalyst    Role = "Remote Analyst"
)

var (
	CoordinatorRoles = []Role{RoleSIMSRemoteCoordinator}
	DeployedIMRoles  = []Role{
		RoleInformationManagementCoordinator,
		RoleInformationAnalyst,
		RolePrimaryDataCollectionOfficer,
		RoleMappingVisualizationOfficer,
	}
	RemoteSupportRoles = []Role{RoleRemoteIMSupport}
)

func (r Role) Valid() bool {
	switch r {
	case RoleSIMSRemoteCoordinator,
		RoleInformationManagementCoordinator,
		RoleInformationAnalyst,
		RolePrimaryDataCollectionOfficer,
		RoleMappingVisualizationOfficer,
		RoleRemoteIMSupport,
		RoleFieldCoordinator,
		RoleRemoteAnalyst:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RoleStrings converts roles to their persisted form for IN clauses.
func RoleStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

type EmergencyStatus string

const (
	EmergencyActive  EmergencyStatus = "Active"
	EmergencyClosed  EmergencyStatus = "Closed"
	EmergencyRemoved EmergencyStatus = "Removed"
)

func (s EmergencyStatus) Valid() bool {
	switch s {
	case EmergencyActive, EmergencyClosed, EmergencyRemoved:
		return true
	default:
		return false
	}
}

func ParseEmergencyStatus(s string) (EmergencyStatus, error) {
	st := EmergencyStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown emergency status %q", s)
	}
	return st, nil
}

type AssignmentStatus string

const (
	AssignmentActive  AssignmentStatus = "Active"
	AssignmentRemoved AssignmentStatus = "Removed"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentActive, AssignmentRemoved:
		return true
	default:
		return false
	}
}

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
	UserPending  UserStatus = "Pending"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserPending:
		return true
	default:
		return false
	}
}

type ProductStatus string

const (
	ProductPendingApproval ProductStatus = "Pending Approval"
	ProductApproved        ProductStatus = "Approved"
	ProductRejected        ProductStatus = "Rejected"
	ProductRemoved         ProductStatus = "Removed"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductPendingApproval, ProductApproved, ProductRejected, ProductRemoved:
		return true
	default:
		return false
	}
}
