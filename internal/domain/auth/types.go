// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "strings"

// Role represents a member's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

// ParseRole normalizes a raw role string and reports whether it is one of
// the known roles. Unknown values are returned lowercased with ok=false so
// callers can keep them for logging while never matching a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent:
		return r, true
	default:
		return r, false
	}
}

// Status represents a member's activation state. New registrations start as
// pending and are activated by an administrator.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

// ParseStatus normalizes a raw status string and reports whether it is one
// of the known statuses.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusActive:
		return st, true
	default:
		return st, false
	}
}

// Claims is the verified identity reconstructed from a session token on
// every request. Claims are all-or-nothing: a request either carries a
// fully populated Claims value or none at all.
type Claims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// IsStaff returns true for roles allowed to see unpublished content.
func (c Claims) IsStaff() bool { return c.Role == RoleAdmin || c.Role == RoleTeacher }

// IsActive returns true once an administrator has activated the member.
func (c Claims) IsActive() bool { return c.Status == StatusActive }
