package models

import (
	"time"
)

// Alternative is one candidate being ranked within an event
type Alternative struct {
	ID        int64     `db:"id"`
	EventID   int64     `db:"event_id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	NIP       *string   `db:"nip"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
