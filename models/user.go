package models

import (
	"time"
)

// Role is the application-wide role of a user
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDecisionMaker Role = "decision_maker"
)

// User is an account that can be assigned to events as a judge
type User struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      Role      `db:"role"`
	DiscordID *int64    `db:"discord_id"` // Linked Discord account, if any
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin reports whether the user holds the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
