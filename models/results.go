package models

import (
	"time"
)

// WpResult is the Weighted Product outcome for one judge and alternative
type WpResult struct {
	ID             int64     `db:"id" json:"-" yaml:"-"`
	EventID        int64     `db:"event_id" json:"event_id" yaml:"event_id"`
	UserID         int64     `db:"user_id" json:"judge_id" yaml:"judge_id"`
	AlternativeID  int64     `db:"alternative_id" json:"alternative_id" yaml:"alternative_id"`
	SValue         float64   `db:"s_value" json:"s_value" yaml:"s_value"`
	VValue         float64   `db:"v_value" json:"v_value" yaml:"v_value"`
	IndividualRank int       `db:"individual_rank" json:"individual_rank" yaml:"individual_rank"`
	CreatedAt      time.Time `db:"created_at" json:"-" yaml:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"-" yaml:"-"`
}

// BordaResult is the aggregated group outcome for one alternative
type BordaResult struct {
	ID            int64     `db:"id" json:"-" yaml:"-"`
	EventID       int64     `db:"event_id" json:"event_id" yaml:"event_id"`
	AlternativeID int64     `db:"alternative_id" json:"alternative_id" yaml:"alternative_id"`
	TotalPoints   float64   `db:"total_points" json:"total_points" yaml:"total_points"`
	FinalRank     int       `db:"final_rank" json:"final_rank" yaml:"final_rank"`
	CreatedAt     time.Time `db:"created_at" json:"-" yaml:"-"`
	UpdatedAt     time.Time `db:"updated_at" json:"-" yaml:"-"`
}
