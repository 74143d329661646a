// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is persisted to users.json; the json tags are the on-disk contract
// shared with the web frontend.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsPremium    bool      `json:"isPremium"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

func ValidRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}
