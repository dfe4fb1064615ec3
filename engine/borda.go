package engine

import (
	"groupdss/models"
)

// BordaInput is the stored Weighted Product outcome of an event plus the
// settings the aggregation needs
type BordaInput struct {
	EventID          int64
	WpResults        []models.WpResult
	AlternativeCount int
	Schedule         PointSchedule
}

// AggregateBorda merges every judge's ranking into one point total per
// alternative. At each rank position r the V-values an alternative collected
// there are summed and multiplied by points(r), so a placement counts in
// proportion to how strongly the judge preferred the alternative.
func AggregateBorda(in BordaInput) ([]models.BordaResult, error) {
	if len(in.WpResults) == 0 {
		return nil, NewError(ErrEmptyConfiguration, "no WP results found for event %d", in.EventID)
	}
	if in.AlternativeCount <= 0 {
		return nil, NewError(ErrEmptyConfiguration, "event %d has no alternatives", in.EventID)
	}

	var alternativeIDs []int64
	vSums := make(map[int64]map[int]float64)
	for _, wp := range in.WpResults {
		byRank, seen := vSums[wp.AlternativeID]
		if !seen {
			byRank = make(map[int]float64)
			vSums[wp.AlternativeID] = byRank
			alternativeIDs = append(alternativeIDs, wp.AlternativeID)
		}
		byRank[wp.IndividualRank] += wp.VValue
	}

	totals := make([]float64, len(alternativeIDs))
	for i, alternativeID := range alternativeIDs {
		for rank := 1; rank <= in.AlternativeCount; rank++ {
			totals[i] += vSums[alternativeID][rank] * in.Schedule.Points(rank, in.AlternativeCount)
		}
	}

	ranks := CompetitionRanks(totals, 0)

	results := make([]models.BordaResult, len(alternativeIDs))
	for i, alternativeID := range alternativeIDs {
		results[i] = models.BordaResult{
			EventID:       in.EventID,
			AlternativeID: alternativeID,
			TotalPoints:   totals[i],
			FinalRank:     ranks[i],
		}
	}

	return results, nil
}
