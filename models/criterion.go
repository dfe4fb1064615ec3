package models

import (
	"time"
)

// AttributeType is the polarity of a criterion
type AttributeType string

const (
	AttributeBenefit AttributeType = "benefit" // higher scores are better
	AttributeCost    AttributeType = "cost"    // lower scores are better
)

// Criterion is one weighted evaluation dimension of an event
type Criterion struct {
	ID            int64         `db:"id"`
	EventID       int64         `db:"event_id"`
	Name          string        `db:"name"`
	Weight        float64       `db:"weight"`
	AttributeType AttributeType `db:"attribute_type"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}
