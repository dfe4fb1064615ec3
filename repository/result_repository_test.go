package repository

import (
	"context"
	"math"
	"testing"

	"groupdss/models"
	"groupdss/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	testDB := testutil.SetupTestDatabase(t)
	wpRepo := NewWpResultRepository(testDB.DB)
	bordaRepo := NewBordaResultRepository(testDB.DB)
	ctx := context.Background()

	fixture := testutil.SeedEvent(t, testDB.DB,
		[]string{"A1", "A2"},
		[]testutil.CriterionSpec{{Name: "Quality", Weight: 1, Attribute: models.AttributeBenefit}},
		[][][]float64{{{4}, {2}}, {{3}, {3}}},
	)
	judge1, judge2 := fixture.JudgeIDs[0], fixture.JudgeIDs[1]
	alt1, alt2 := fixture.AlternativeIDs[0], fixture.AlternativeIDs[1]

	wpRows := []models.WpResult{
		{EventID: fixture.EventID, UserID: judge1, AlternativeID: alt1, SValue: 4, VValue: 2.0 / 3.0, IndividualRank: 1},
		{EventID: fixture.EventID, UserID: judge1, AlternativeID: alt2, SValue: 2, VValue: 1.0 / 3.0, IndividualRank: 2},
		{EventID: fixture.EventID, UserID: judge2, AlternativeID: alt1, SValue: math.MaxFloat64, VValue: 0.5, IndividualRank: 1},
		{EventID: fixture.EventID, UserID: judge2, AlternativeID: alt2, SValue: math.MaxFloat64, VValue: 0.5, IndividualRank: 1},
	}

	t.Run("WP rows round trip exactly", func(t *testing.T) {
		require.NoError(t, wpRepo.CreateBatch(ctx, wpRows))

		stored, err := wpRepo.GetByEvent(ctx, fixture.EventID)
		require.NoError(t, err)
		require.Len(t, stored, 4)
		for i := range wpRows {
			assert.Equal(t, wpRows[i].UserID, stored[i].UserID)
			assert.Equal(t, wpRows[i].AlternativeID, stored[i].AlternativeID)
			assert.Equal(t, wpRows[i].SValue, stored[i].SValue)
			assert.Equal(t, wpRows[i].VValue, stored[i].VValue)
			assert.Equal(t, wpRows[i].IndividualRank, stored[i].IndividualRank)
			assert.NotZero(t, stored[i].ID)
		}
	})

	t.Run("WP rows of one judge ordered by rank", func(t *testing.T) {
		stored, err := wpRepo.GetByEventAndJudge(ctx, fixture.EventID, judge1)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, 1, stored[0].IndividualRank)
		assert.Equal(t, alt1, stored[0].AlternativeID)
	})

	t.Run("duplicate WP row is rejected", func(t *testing.T) {
		assert.Error(t, wpRepo.CreateBatch(ctx, wpRows[:1]))
	})

	t.Run("Borda rows ordered by final rank", func(t *testing.T) {
		require.NoError(t, bordaRepo.CreateBatch(ctx, []models.BordaResult{
			{EventID: fixture.EventID, AlternativeID: alt2, TotalPoints: 0.5, FinalRank: 2},
			{EventID: fixture.EventID, AlternativeID: alt1, TotalPoints: 1.1666666666666667, FinalRank: 1},
		}))

		stored, err := bordaRepo.GetByEvent(ctx, fixture.EventID)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, alt1, stored[0].AlternativeID)
		assert.Equal(t, 1.1666666666666667, stored[0].TotalPoints)
		assert.Equal(t, 2, stored[1].FinalRank)
	})

	t.Run("delete by event", func(t *testing.T) {
		deleted, err := wpRepo.DeleteByEvent(ctx, fixture.EventID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), deleted)

		deleted, err = bordaRepo.DeleteByEvent(ctx, fixture.EventID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		stored, err := wpRepo.GetByEvent(ctx, fixture.EventID)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("empty batches are no-ops", func(t *testing.T) {
		assert.NoError(t, wpRepo.CreateBatch(ctx, nil))
		assert.NoError(t, bordaRepo.CreateBatch(ctx, nil))
	})
}
