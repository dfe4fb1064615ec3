package engine

import (
	"errors"
	"testing"

	"groupdss/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wp(judgeID, alternativeID int64, v float64, rank int) models.WpResult {
	return models.WpResult{EventID: 1, UserID: judgeID, AlternativeID: alternativeID, VValue: v, IndividualRank: rank}
}

func bordaFor(t *testing.T, results []models.BordaResult, alternativeID int64) models.BordaResult {
	t.Helper()
	for _, r := range results {
		if r.AlternativeID == alternativeID {
			return r
		}
	}
	t.Fatalf("no Borda result for alternative %d", alternativeID)
	return models.BordaResult{}
}

func TestAggregateBorda_DefaultSchedule(t *testing.T) {
	results, err := AggregateBorda(BordaInput{
		EventID:          1,
		AlternativeCount: 3,
		WpResults: []models.WpResult{
			wp(10, 1, 0.5, 1),
			wp(10, 2, 1.0/3.0, 2),
			wp(10, 3, 1.0/6.0, 3),
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	a := bordaFor(t, results, 1)
	b := bordaFor(t, results, 2)
	c := bordaFor(t, results, 3)

	assert.InDelta(t, 1.0, a.TotalPoints, 1e-12)
	assert.InDelta(t, 1.0/3.0, b.TotalPoints, 1e-12)
	assert.Equal(t, 0.0, c.TotalPoints)
	assert.Equal(t, 1, a.FinalRank)
	assert.Equal(t, 2, b.FinalRank)
	assert.Equal(t, 3, c.FinalRank)
}

func TestAggregateBorda_CustomSchedule(t *testing.T) {
	results, err := AggregateBorda(BordaInput{
		EventID:          1,
		AlternativeCount: 3,
		Schedule:         PointSchedule{1: 100, 2: 50},
		WpResults: []models.WpResult{
			wp(10, 1, 0.5, 1),
			wp(10, 2, 1.0/3.0, 2),
			wp(10, 3, 1.0/6.0, 3),
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, bordaFor(t, results, 1).TotalPoints, 1e-9)
	assert.InDelta(t, 50.0/3.0, bordaFor(t, results, 2).TotalPoints, 1e-9)
	// rank 3 falls back to N - 3 = 0
	assert.Equal(t, 0.0, bordaFor(t, results, 3).TotalPoints)
}

func TestAggregateBorda_SumsVValuesAcrossJudges(t *testing.T) {
	results, err := AggregateBorda(BordaInput{
		EventID:          1,
		AlternativeCount: 2,
		WpResults: []models.WpResult{
			wp(10, 1, 0.6, 1), wp(10, 2, 0.4, 2),
			wp(11, 1, 0.7, 1), wp(11, 2, 0.3, 2),
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.3, bordaFor(t, results, 1).TotalPoints, 1e-12)
	assert.Equal(t, 0.0, bordaFor(t, results, 2).TotalPoints)
}

func TestAggregateBorda_TiedTotalsShareRank(t *testing.T) {
	results, err := AggregateBorda(BordaInput{
		EventID:          1,
		AlternativeCount: 3,
		WpResults: []models.WpResult{
			wp(10, 1, 0.6, 1), wp(10, 2, 0.4, 2), wp(10, 3, 0, 3),
			wp(11, 2, 0.6, 1), wp(11, 1, 0.4, 2), wp(11, 3, 0, 3),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, bordaFor(t, results, 1).FinalRank)
	assert.Equal(t, 1, bordaFor(t, results, 2).FinalRank)
	assert.Equal(t, 3, bordaFor(t, results, 3).FinalRank)
}

func TestAggregateBorda_SharedIndividualRank(t *testing.T) {
	// Judge 10 ties alternatives 1 and 2 at rank 1; rank 2 stays empty.
	results, err := AggregateBorda(BordaInput{
		EventID:          1,
		AlternativeCount: 3,
		WpResults: []models.WpResult{
			wp(10, 1, 0.4, 1), wp(10, 2, 0.4, 1), wp(10, 3, 0.2, 3),
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.8, bordaFor(t, results, 1).TotalPoints, 1e-12)
	assert.InDelta(t, 0.8, bordaFor(t, results, 2).TotalPoints, 1e-12)
	assert.Equal(t, 0.0, bordaFor(t, results, 3).TotalPoints)
}

func TestAggregateBorda_Errors(t *testing.T) {
	_, err := AggregateBorda(BordaInput{EventID: 1, AlternativeCount: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyConfiguration))

	_, err = AggregateBorda(BordaInput{
		EventID:   1,
		WpResults: []models.WpResult{wp(10, 1, 1, 1)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyConfiguration))
}

func TestAggregateBorda_AfterWeightedProduct(t *testing.T) {
	wpResults, err := ComputeWeightedProduct(WeightedProductInput{
		EventID:      1,
		JudgeIDs:     []int64{10},
		Alternatives: alternatives(1, 2),
		Criteria:     []models.Criterion{{ID: 100, Weight: 1, AttributeType: models.AttributeBenefit}},
		Evaluations: []models.Evaluation{
			evaluation(10, 1, 100, 4),
			evaluation(10, 2, 100, 2),
		},
	})
	require.NoError(t, err)

	results, err := AggregateBorda(BordaInput{EventID: 1, WpResults: wpResults, AlternativeCount: 2})
	require.NoError(t, err)

	a := bordaFor(t, results, 1)
	b := bordaFor(t, results, 2)
	assert.InDelta(t, 2.0/3.0, a.TotalPoints, 1e-9)
	assert.Equal(t, 0.0, b.TotalPoints)
	assert.Equal(t, 1, a.FinalRank)
	assert.Equal(t, 2, b.FinalRank)
}
