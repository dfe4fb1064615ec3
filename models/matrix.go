package models

// RankedAlternative is a Borda result joined with its alternative
type RankedAlternative struct {
	AlternativeID int64   `json:"alternative_id" yaml:"alternative_id"`
	Code          string  `json:"code" yaml:"code"`
	Name          string  `json:"name" yaml:"name"`
	TotalPoints   float64 `json:"total_points" yaml:"total_points"`
	FinalRank     int     `json:"final_rank" yaml:"final_rank"`
}

// BordaMatrixRow shows how an alternative's Borda points were built up:
// the V-values it collected at each rank position
type BordaMatrixRow struct {
	AlternativeID int64           `json:"alternative_id" yaml:"alternative_id"`
	Code          string          `json:"code" yaml:"code"`
	Name          string          `json:"name" yaml:"name"`
	RankVSums     map[int]float64 `json:"rank_v_sums" yaml:"rank_v_sums"`
	BordaPoints   float64         `json:"borda_points" yaml:"borda_points"`
	BordaValue    float64         `json:"borda_value" yaml:"borda_value"` // points / total points
	FinalRank     int             `json:"final_rank" yaml:"final_rank"`
}

// BordaMatrix is the aggregation view of an event's results
type BordaMatrix struct {
	Rows             []BordaMatrixRow `json:"rows" yaml:"rows"`
	MaxRank          int              `json:"max_rank" yaml:"max_rank"`
	TotalBordaPoints float64          `json:"total_borda_points" yaml:"total_borda_points"`
}

// EventResults is everything a caller needs to display an event's ranking
type EventResults struct {
	Event   *Event              `json:"-" yaml:"-"`
	Ranking []RankedAlternative `json:"ranking" yaml:"ranking"`
	Matrix  *BordaMatrix        `json:"matrix,omitempty" yaml:"matrix,omitempty"`
}

// CriterionCell is one judge's score for a criterion with its WP term
type CriterionCell struct {
	CriterionID int64   `json:"criterion_id" yaml:"criterion_id"`
	Score       float64 `json:"score" yaml:"score"`
	Power       float64 `json:"power" yaml:"power"`
	Term        float64 `json:"term" yaml:"term"` // score^power
}

// JudgeMatrixRow is one alternative in a judge's Weighted Product matrix
type JudgeMatrixRow struct {
	AlternativeID int64           `json:"alternative_id" yaml:"alternative_id"`
	Code          string          `json:"code" yaml:"code"`
	Name          string          `json:"name" yaml:"name"`
	Cells         []CriterionCell `json:"cells" yaml:"cells"`
	SValue        float64         `json:"s_value" yaml:"s_value"`
	VValue        float64         `json:"v_value" yaml:"v_value"`
	Rank          int             `json:"rank" yaml:"rank"`
}

// JudgeMatrix is the stored Weighted Product outcome of one judge
type JudgeMatrix struct {
	EventID  int64            `json:"event_id" yaml:"event_id"`
	JudgeID  int64            `json:"judge_id" yaml:"judge_id"`
	Criteria []Criterion      `json:"-" yaml:"-"`
	Rows     []JudgeMatrixRow `json:"rows" yaml:"rows"`
}
