package models

// JudgeCompleteness is the evaluation progress of one judge
type JudgeCompleteness struct {
	UserID              int64  `json:"user_id" yaml:"user_id"`
	Name                string `json:"name" yaml:"name"`
	IsLeader            bool   `json:"is_leader" yaml:"is_leader"`
	IsComplete          bool   `json:"is_complete" yaml:"is_complete"`
	ActualEvaluations   int    `json:"actual_evaluations" yaml:"actual_evaluations"`
	ExpectedEvaluations int    `json:"expected_evaluations" yaml:"expected_evaluations"`
	MissingCount        int    `json:"missing_count" yaml:"missing_count"`
}

// CompletenessReport tells whether every judge has scored every
// alternative against every criterion
type CompletenessReport struct {
	EventID         int64               `json:"event_id" yaml:"event_id"`
	IsComplete      bool                `json:"is_complete" yaml:"is_complete"`
	TotalJudges     int                 `json:"total_judges" yaml:"total_judges"`
	CompletedJudges int                 `json:"completed_judges" yaml:"completed_judges"`
	Judges          []JudgeCompleteness `json:"judges" yaml:"judges"`
}
