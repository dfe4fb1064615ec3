package engine

import (
	"math"
	"sort"

	"groupdss/models"
)

// BuildBordaMatrix lays out, per alternative, the V-values collected at each
// rank position next to its Borda points and normalized Borda value. Rows are
// ordered by final rank. It returns nil when the event has no WP results yet.
func BuildBordaMatrix(alternatives []models.Alternative, wpResults []models.WpResult, bordaResults []models.BordaResult) *models.BordaMatrix {
	if len(wpResults) == 0 {
		return nil
	}

	byID := make(map[int64]models.Alternative, len(alternatives))
	for _, alternative := range alternatives {
		byID[alternative.ID] = alternative
	}

	rows := make(map[int64]*models.BordaMatrixRow)
	var order []int64
	for _, wp := range wpResults {
		row, ok := rows[wp.AlternativeID]
		if !ok {
			alternative := byID[wp.AlternativeID]
			row = &models.BordaMatrixRow{
				AlternativeID: wp.AlternativeID,
				Code:          alternative.Code,
				Name:          alternative.Name,
				RankVSums:     make(map[int]float64),
			}
			rows[wp.AlternativeID] = row
			order = append(order, wp.AlternativeID)
		}
		row.RankVSums[wp.IndividualRank] += wp.VValue
	}
	maxRank := len(order)

	totalPoints := 0.0
	for _, borda := range bordaResults {
		totalPoints += borda.TotalPoints
	}

	matrix := &models.BordaMatrix{
		MaxRank:          maxRank,
		TotalBordaPoints: totalPoints,
		Rows:             make([]models.BordaMatrixRow, 0, len(order)),
	}

	bordaByAlternative := make(map[int64]models.BordaResult, len(bordaResults))
	for _, borda := range bordaResults {
		bordaByAlternative[borda.AlternativeID] = borda
	}

	for _, alternativeID := range order {
		row := rows[alternativeID]
		for rank := 1; rank <= maxRank; rank++ {
			if _, ok := row.RankVSums[rank]; !ok {
				row.RankVSums[rank] = 0
			}
		}
		if borda, ok := bordaByAlternative[alternativeID]; ok {
			row.BordaPoints = borda.TotalPoints
			row.FinalRank = borda.FinalRank
			if totalPoints > 0 {
				row.BordaValue = borda.TotalPoints / totalPoints
			}
		} else {
			row.FinalRank = math.MaxInt32
		}
		matrix.Rows = append(matrix.Rows, *row)
	}

	sort.SliceStable(matrix.Rows, func(i, j int) bool {
		return matrix.Rows[i].FinalRank < matrix.Rows[j].FinalRank
	})

	return matrix
}

// BuildJudgeMatrix shows one judge's stored WP results together with the
// per-criterion score^power terms they were built from. Missing evaluations
// leave a zero cell. It returns nil when the judge has no stored results.
func BuildJudgeMatrix(eventID, judgeID int64, alternatives []models.Alternative, criteria []models.Criterion, evaluations []models.Evaluation, wpResults []models.WpResult) *models.JudgeMatrix {
	if len(wpResults) == 0 || len(alternatives) == 0 || len(criteria) == 0 {
		return nil
	}

	weightSum := 0.0
	for _, criterion := range criteria {
		weightSum += criterion.Weight
	}
	if !(weightSum > 0) {
		return nil
	}

	byID := make(map[int64]models.Alternative, len(alternatives))
	for _, alternative := range alternatives {
		byID[alternative.ID] = alternative
	}

	scores := make(map[evaluationKey]float64, len(evaluations))
	for _, ev := range evaluations {
		scores[evaluationKey{ev.UserID, ev.AlternativeID, ev.CriterionID}] = ev.Score
	}

	matrix := &models.JudgeMatrix{
		EventID:  eventID,
		JudgeID:  judgeID,
		Criteria: criteria,
		Rows:     make([]models.JudgeMatrixRow, 0, len(wpResults)),
	}

	for _, wp := range wpResults {
		alternative := byID[wp.AlternativeID]
		row := models.JudgeMatrixRow{
			AlternativeID: wp.AlternativeID,
			Code:          alternative.Code,
			Name:          alternative.Name,
			SValue:        wp.SValue,
			VValue:        wp.VValue,
			Rank:          wp.IndividualRank,
			Cells:         make([]models.CriterionCell, 0, len(criteria)),
		}
		for _, criterion := range criteria {
			cell := models.CriterionCell{CriterionID: criterion.ID}
			if score, ok := scores[evaluationKey{judgeID, wp.AlternativeID, criterion.ID}]; ok {
				cell.Score = score
				cell.Power = CriterionPower(criterion, weightSum)
				cell.Term = math.Pow(score, cell.Power)
			}
			row.Cells = append(row.Cells, cell)
		}
		matrix.Rows = append(matrix.Rows, row)
	}

	sort.SliceStable(matrix.Rows, func(i, j int) bool {
		return matrix.Rows[i].Rank < matrix.Rows[j].Rank
	})

	return matrix
}
