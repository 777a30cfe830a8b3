package domain

import "testing"

func TestParseRole(t *testing.T) {
	r, err := ParseRole("  Remote IM Support ")
	if err != nil {
		t.Fatalf("ParseRole: %v", err)
	}
	if r != RoleRemoteIMSupport {
		t.Fatalf("ParseRole: expected %q, got %q", RoleRemoteIMSupport, r)
	}
	if _, err := ParseRole("remote im support"); err == nil {
		t.Fatalf("ParseRole: expected case-sensitive mismatch to fail")
	}
}

func TestRoleGroupsAreValidAndDisjoint(t *testing.T) {
	seen := map[Role]string{}
	groups := map[string][]Role{
		"coordinators":   CoordinatorRoles,
		"deployed_im":    DeployedIMRoles,
		"remote_support": RemoteSupportRoles,
	}
	for name, roles := range groups {
		for _, r := range roles {
			if !r.Valid() {
				t.Fatalf("%s: invalid role %q", name, r)
			}
			if prev, ok := seen[r]; ok {
				t.Fatalf("role %q in both %s and %s", r, prev, name)
			}
			seen[r] = name
		}
	}
	if len(DeployedIMRoles) != 4 {
		t.Fatalf("expected 4 deployed IM roles, got %d", len(DeployedIMRoles))
	}
}

func TestParseEmergencyStatus(t *testing.T) {
	for _, s := range []string{"Active", "Closed", "Removed"} {
		if _, err := ParseEmergencyStatus(s); err != nil {
			t.Fatalf("ParseEmergencyStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseEmergencyStatus("active"); err == nil {
		t.Fatalf("expected lowercase status to be rejected")
	}
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: ""}
	if got := u.FullName(); got != "Ada" {
		t.Fatalf("FullName: expected %q, got %q", "Ada", got)
	}
}
