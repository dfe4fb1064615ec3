package engine

import (
	"errors"
	"math"
	"testing"

	"groupdss/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alternatives(ids ...int64) []models.Alternative {
	out := make([]models.Alternative, len(ids))
	for i, id := range ids {
		out[i] = models.Alternative{ID: id, Code: string(rune('A' + i)), Name: string(rune('A' + i))}
	}
	return out
}

func evaluation(judgeID, alternativeID, criterionID int64, score float64) models.Evaluation {
	return models.Evaluation{UserID: judgeID, AlternativeID: alternativeID, CriterionID: criterionID, Score: score}
}

func resultFor(t *testing.T, results []models.WpResult, judgeID, alternativeID int64) models.WpResult {
	t.Helper()
	for _, r := range results {
		if r.UserID == judgeID && r.AlternativeID == alternativeID {
			return r
		}
	}
	t.Fatalf("no WP result for judge %d alternative %d", judgeID, alternativeID)
	return models.WpResult{}
}

func TestComputeWeightedProduct_SingleBenefitCriterion(t *testing.T) {
	in := WeightedProductInput{
		EventID:      1,
		JudgeIDs:     []int64{10},
		Alternatives: alternatives(1, 2),
		Criteria:     []models.Criterion{{ID: 100, Weight: 1, AttributeType: models.AttributeBenefit}},
		Evaluations: []models.Evaluation{
			evaluation(10, 1, 100, 4),
			evaluation(10, 2, 100, 2),
		},
	}

	results, err := ComputeWeightedProduct(in)
	require.NoError(t, err)
	require.Len(t, results, 2)

	a := resultFor(t, results, 10, 1)
	b := resultFor(t, results, 10, 2)

	assert.InDelta(t, 4.0, a.SValue, 1e-9)
	assert.InDelta(t, 2.0, b.SValue, 1e-9)
	assert.InDelta(t, 2.0/3.0, a.VValue, 1e-9)
	assert.InDelta(t, 1.0/3.0, b.VValue, 1e-9)
	assert.Equal(t, 1, a.IndividualRank)
	assert.Equal(t, 2, b.IndividualRank)
	assert.Equal(t, int64(1), a.EventID)
}

func TestComputeWeightedProduct_CostCriterionInvertsPreference(t *testing.T) {
	in := WeightedProductInput{
		EventID:      1,
		JudgeIDs:     []int64{10},
		Alternatives: alternatives(1, 2),
		Criteria:     []models.Criterion{{ID: 100, Weight: 3, AttributeType: models.AttributeCost}},
		Evaluations: []models.Evaluation{
			evaluation(10, 1, 100, 4),
			evaluation(10, 2, 100, 2),
		},
	}

	results, err := ComputeWeightedProduct(in)
	require.NoError(t, err)

	a := resultFor(t, results, 10, 1)
	b := resultFor(t, results, 10, 2)

	assert.InDelta(t, 0.25, a.SValue, 1e-9)
	assert.InDelta(t, 0.5, b.SValue, 1e-9)
	assert.Equal(t, 2, a.IndividualRank)
	assert.Equal(t, 1, b.IndividualRank)
}

func TestComputeWeightedProduct_MixedCriteria(t *testing.T) {
	criteria := []models.Criterion{
		{ID: 100, Weight: 3, AttributeType: models.AttributeBenefit},
		{ID: 101, Weight: 1, AttributeType: models.AttributeCost},
	}
	in := WeightedProductInput{
		EventID:      1,
		JudgeIDs:     []int64{10, 11},
		Alternatives: alternatives(1, 2, 3),
		Criteria:     criteria,
		Evaluations: []models.Evaluation{
			evaluation(10, 1, 100, 5), evaluation(10, 1, 101, 2),
			evaluation(10, 2, 100, 3), evaluation(10, 2, 101, 1),
			evaluation(10, 3, 100, 1), evaluation(10, 3, 101, 5),
			evaluation(11, 1, 100, 2), evaluation(11, 1, 101, 4),
			evaluation(11, 2, 100, 4), evaluation(11, 2, 101, 1.5),
			evaluation(11, 3, 100, 3), evaluation(11, 3, 101, 3),
		},
	}

	results, err := ComputeWeightedProduct(in)
	require.NoError(t, err)
	require.Len(t, results, 6)

	for _, judgeID := range []int64{10, 11} {
		sum := 0.0
		for _, alternativeID := range []int64{1, 2, 3} {
			r := resultFor(t, results, judgeID, alternativeID)
			assert.GreaterOrEqual(t, r.VValue, 0.0)
			assert.LessOrEqual(t, r.VValue, 1.0)
			sum += r.VValue
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "judge %d", judgeID)
	}

	// S = 5^0.75 * 2^-0.25
	expected := math.Pow(5, 0.75) * math.Pow(2, -0.25)
	assert.InDelta(t, expected, resultFor(t, results, 10, 1).SValue, 1e-9)
}

func TestComputeWeightedProduct_TiesShareRank(t *testing.T) {
	in := WeightedProductInput{
		EventID:      1,
		JudgeIDs:     []int64{10},
		Alternatives: alternatives(1, 2, 3),
		Criteria:     []models.Criterion{{ID: 100, Weight: 1, AttributeType: models.AttributeBenefit}},
		Evaluations: []models.Evaluation{
			evaluation(10, 1, 100, 3),
			evaluation(10, 2, 100, 3),
			evaluation(10, 3, 100, 1),
		},
	}

	results, err := ComputeWeightedProduct(in)
	require.NoError(t, err)

	assert.Equal(t, 1, resultFor(t, results, 10, 1).IndividualRank)
	assert.Equal(t, 1, resultFor(t, results, 10, 2).IndividualRank)
	assert.Equal(t, 3, resultFor(t, results, 10, 3).IndividualRank)
}

func TestComputeWeightedProduct_WeightScaleDoesNotMatter(t *testing.T) {
	build := func(scale float64) []models.WpResult {
		in := WeightedProductInput{
			EventID:      1,
			JudgeIDs:     []int64{10},
			Alternatives: alternatives(1, 2),
			Criteria: []models.Criterion{
				{ID: 100, Weight: 2 * scale, AttributeType: models.AttributeBenefit},
				{ID: 101, Weight: 1 * scale, AttributeType: models.AttributeCost},
			},
			Evaluations: []models.Evaluation{
				evaluation(10, 1, 100, 4), evaluation(10, 1, 101, 2),
				evaluation(10, 2, 100, 3), evaluation(10, 2, 101, 1),
			},
		}
		results, err := ComputeWeightedProduct(in)
		require.NoError(t, err)
		return results
	}

	small := build(1)
	large := build(100)
	for i := range small {
		assert.InDelta(t, small[i].VValue, large[i].VValue, 1e-12)
		assert.Equal(t, small[i].IndividualRank, large[i].IndividualRank)
	}
}

func TestComputeWeightedProduct_Deterministic(t *testing.T) {
	in := WeightedProductInput{
		EventID:      1,
		JudgeIDs:     []int64{10, 11},
		Alternatives: alternatives(1, 2),
		Criteria:     []models.Criterion{{ID: 100, Weight: 1, AttributeType: models.AttributeBenefit}},
		Evaluations: []models.Evaluation{
			evaluation(10, 1, 100, 4), evaluation(10, 2, 100, 2),
			evaluation(11, 1, 100, 1.5), evaluation(11, 2, 100, 3.25),
		},
	}

	first, err := ComputeWeightedProduct(in)
	require.NoError(t, err)
	second, err := ComputeWeightedProduct(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeWeightedProduct_Errors(t *testing.T) {
	benefit := []models.Criterion{{ID: 100, Weight: 1, AttributeType: models.AttributeBenefit}}

	tests := []struct {
		name string
		in   WeightedProductInput
		kind error
	}{
		{
			name: "no criteria",
			in: WeightedProductInput{
				EventID:      1,
				JudgeIDs:     []int64{10},
				Alternatives: alternatives(1),
			},
			kind: ErrEmptyConfiguration,
		},
		{
			name: "zero weight sum",
			in: WeightedProductInput{
				EventID:      1,
				JudgeIDs:     []int64{10},
				Alternatives: alternatives(1),
				Criteria:     []models.Criterion{{ID: 100, Weight: 0, AttributeType: models.AttributeBenefit}},
				Evaluations:  []models.Evaluation{evaluation(10, 1, 100, 3)},
			},
			kind: ErrEmptyConfiguration,
		},
		{
			name: "missing evaluation",
			in: WeightedProductInput{
				EventID:      1,
				JudgeIDs:     []int64{10},
				Alternatives: alternatives(1, 2),
				Criteria:     benefit,
				Evaluations:  []models.Evaluation{evaluation(10, 1, 100, 3)},
			},
			kind: ErrIncompleteData,
		},
		{
			name: "zero score",
			in: WeightedProductInput{
				EventID:      1,
				JudgeIDs:     []int64{10},
				Alternatives: alternatives(1),
				Criteria:     benefit,
				Evaluations:  []models.Evaluation{evaluation(10, 1, 100, 0)},
			},
			kind: ErrInvalidScore,
		},
		{
			name: "negative score",
			in: WeightedProductInput{
				EventID:      1,
				JudgeIDs:     []int64{10},
				Alternatives: alternatives(1),
				Criteria:     benefit,
				Evaluations:  []models.Evaluation{evaluation(10, 1, 100, -2)},
			},
			kind: ErrInvalidScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ComputeWeightedProduct(tt.in)
			require.Error(t, err)
			assert.Nil(t, results)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestCriterionPower(t *testing.T) {
	assert.InDelta(t, 0.75, CriterionPower(models.Criterion{Weight: 3, AttributeType: models.AttributeBenefit}, 4), 1e-12)
	assert.InDelta(t, -0.25, CriterionPower(models.Criterion{Weight: 1, AttributeType: models.AttributeCost}, 4), 1e-12)
}

func TestClampS(t *testing.T) {
	assert.Equal(t, math.MaxFloat64, clampS(math.Inf(1)))
	assert.Equal(t, 0.0, clampS(math.Inf(-1)))
	assert.Equal(t, 0.0, clampS(math.NaN()))
	assert.Equal(t, 0.0, clampS(-1))
	assert.Equal(t, 2.5, clampS(2.5))
}

func TestNormalize(t *testing.T) {
	t.Run("zero sum yields zeros", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0}, normalize([]float64{0, 0}))
	})

	t.Run("overflowing sum is rescaled", func(t *testing.T) {
		v := normalize([]float64{math.MaxFloat64, math.MaxFloat64, 0})
		assert.InDelta(t, 0.5, v[0], 1e-12)
		assert.InDelta(t, 0.5, v[1], 1e-12)
		assert.Equal(t, 0.0, v[2])
	})

	t.Run("regular values", func(t *testing.T) {
		v := normalize([]float64{1, 3})
		assert.InDelta(t, 0.25, v[0], 1e-12)
		assert.InDelta(t, 0.75, v[1], 1e-12)
	})
}
