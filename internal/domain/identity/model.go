package identity

import "strings"

// Role is the closed set of privilege levels. The users collection stores
// the role as free text; everything outside the known values resolves to
// RoleUnknown so a broken or missing field never grants privilege.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleMentor  Role = "mentor"
	RoleUser    Role = "user"
	RoleUnknown Role = "unknown"
)

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "mentor":
		return RoleMentor
	case "user":
		return RoleUser
	default:
		return RoleUnknown
	}
}

func (r Role) String() string { return string(r) }

// Resolution is what a role lookup yields for a principal.
type Resolution struct {
	UID         string `json:"uid"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}
