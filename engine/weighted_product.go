package engine

import (
	"math"

	"groupdss/models"
)

// WeightedProductInput is everything the Weighted Product pass reads for one event
type WeightedProductInput struct {
	EventID      int64
	JudgeIDs     []int64
	Alternatives []models.Alternative
	Criteria     []models.Criterion
	Evaluations  []models.Evaluation
}

type evaluationKey struct {
	userID        int64
	alternativeID int64
	criterionID   int64
}

// ComputeWeightedProduct scores every (judge, alternative) pair, normalizes
// the scores per judge and ranks each judge's alternatives. Nothing is returned
// unless the whole vector set could be computed.
func ComputeWeightedProduct(in WeightedProductInput) ([]models.WpResult, error) {
	if len(in.Criteria) == 0 {
		return nil, NewError(ErrEmptyConfiguration, "event %d has no criteria defined", in.EventID)
	}

	weightSum := 0.0
	for _, criterion := range in.Criteria {
		weightSum += criterion.Weight
	}
	if !(weightSum > 0) {
		return nil, NewError(ErrEmptyConfiguration, "criteria weights must sum to > 0 for event %d", in.EventID)
	}

	powers := make([]float64, len(in.Criteria))
	for i, criterion := range in.Criteria {
		powers[i] = CriterionPower(criterion, weightSum)
	}

	scores := make(map[evaluationKey]float64, len(in.Evaluations))
	for _, ev := range in.Evaluations {
		scores[evaluationKey{ev.UserID, ev.AlternativeID, ev.CriterionID}] = ev.Score
	}

	results := make([]models.WpResult, 0, len(in.JudgeIDs)*len(in.Alternatives))

	for _, judgeID := range in.JudgeIDs {
		sValues := make([]float64, len(in.Alternatives))

		for a, alternative := range in.Alternatives {
			logS := 0.0
			for c, criterion := range in.Criteria {
				score, ok := scores[evaluationKey{judgeID, alternative.ID, criterion.ID}]
				if !ok {
					return nil, NewError(ErrIncompleteData,
						"missing evaluation for user %d, alternative %d, criterion %d", judgeID, alternative.ID, criterion.ID)
				}
				if !(score > 0) || math.IsInf(score, 0) {
					return nil, NewError(ErrInvalidScore,
						"invalid score %v for user %d, alternative %d, criterion %d: score must be > 0",
						score, judgeID, alternative.ID, criterion.ID)
				}
				logS += powers[c] * math.Log(score)
			}
			sValues[a] = clampS(math.Exp(logS))
		}

		vValues := normalize(sValues)
		ranks := CompetitionRanks(vValues, PreferenceEpsilon)

		for a, alternative := range in.Alternatives {
			results = append(results, models.WpResult{
				EventID:        in.EventID,
				UserID:         judgeID,
				AlternativeID:  alternative.ID,
				SValue:         sValues[a],
				VValue:         vValues[a],
				IndividualRank: ranks[a],
			})
		}
	}

	return results, nil
}

// CriterionPower is the signed, normalized exponent of a criterion:
// positive for benefit criteria, negative for cost criteria
func CriterionPower(criterion models.Criterion, weightSum float64) float64 {
	power := math.Abs(criterion.Weight / weightSum)
	if criterion.AttributeType == models.AttributeCost {
		return -power
	}
	return power
}

// clampS keeps overflowed products at the largest float and turns every other
// non-finite result into zero so normalization never sees NaN
func clampS(s float64) float64 {
	if math.IsInf(s, 1) {
		return math.MaxFloat64
	}
	if math.IsNaN(s) || math.IsInf(s, -1) || s < 0 {
		return 0
	}
	return s
}

// normalize returns V = S / sum(S); all zeros when the sum is zero
func normalize(sValues []float64) []float64 {
	vValues := make([]float64, len(sValues))

	total := 0.0
	for _, s := range sValues {
		total += s
	}
	if !(total > 0) {
		return vValues
	}

	if math.IsInf(total, 1) {
		// Several clamped values overflow the sum; rescale by the largest first.
		largest := 0.0
		for _, s := range sValues {
			largest = math.Max(largest, s)
		}
		total = 0
		for _, s := range sValues {
			total += s / largest
		}
		for i, s := range sValues {
			vValues[i] = (s / largest) / total
		}
		return vValues
	}

	for i, s := range sValues {
		vValues[i] = s / total
	}
	return vValues
}
