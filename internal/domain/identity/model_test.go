package identity

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"mentor", RoleMentor},
		{"user", RoleUser},
		{"Mentor", RoleMentor},
		{"  ADMIN  ", RoleAdmin},
		{"", RoleUnknown},
		{"superuser", RoleUnknown},
		{"mentor ", RoleMentor},
		{"admin;drop", RoleUnknown},
	}

	for _, c := range cases {
		if got := ParseRole(c.in); got != c.want {
			t.Errorf("ParseRole(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseRoleNeverPrivilegedByDefault(t *testing.T) {
	for _, garbage := range []string{"", "null", "undefined", "0", "true", "moderator"} {
		got := ParseRole(garbage)
		if got == RoleAdmin || got == RoleMentor {
			t.Fatalf("ParseRole(%q) yielded privileged role %v", garbage, got)
		}
	}
}
