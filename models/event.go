package models

import (
	"encoding/json"
	"time"
)

// Event is a ranking exercise with its own alternatives, criteria and judges
type Event struct {
	ID        int64      `db:"id"`
	Name      string     `db:"event_name"`
	EventDate *time.Time `db:"event_date"`
	// BordaSettings is the stored custom point schedule, either a rank->points
	// object or a list of {key, value} pairs. Nil means the default formula.
	BordaSettings json.RawMessage `db:"borda_settings"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Judge is a decision maker assigned to an event
type Judge struct {
	UserID     int64     `db:"user_id"`
	Name       string    `db:"name"`
	IsLeader   bool      `db:"is_leader"`
	AssignedAt time.Time `db:"assigned_at"`
}
