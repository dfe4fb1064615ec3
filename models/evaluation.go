package models

import (
	"time"
)

// Evaluation is one judge's score for an (alternative, criterion) pair
type Evaluation struct {
	ID            int64     `db:"id"`
	EventID       int64     `db:"event_id"`
	UserID        int64     `db:"user_id"`
	AlternativeID int64     `db:"alternative_id"`
	CriterionID   int64     `db:"criterion_id"`
	Score         float64   `db:"score_value"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
