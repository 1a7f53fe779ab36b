//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"

	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
)

// Member is a registered site member (parent, teacher, or administrator).
// PasswordHash is a bcrypt hash and never leaves the data/service layers.
type Member struct {
	ID           string            `json:"id"         db:"id"`
	Email        string            `json:"email"      db:"email"`
	Name         string            `json:"name"       db:"name"`
	PasswordHash string            `json:"-"          db:"password_hash"`
	Role         domainauth.Role   `json:"role"       db:"role"`
	Status       domainauth.Status `json:"status"     db:"status"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// Claims derives the session claims for the member.
func (m *Member) Claims() domainauth.Claims {
	return domainauth.Claims{UserID: m.ID, Role: m.Role, Status: m.Status}
}
