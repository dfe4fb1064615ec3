package ranking

import (
	"testing"

	"groupdss/bot/common"
	"groupdss/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCompletenessEmbed(t *testing.T) {
	report := &models.CompletenessReport{
		EventID:         3,
		TotalJudges:     2,
		CompletedJudges: 1,
		Judges: []models.JudgeCompleteness{
			{Name: "judge1", IsLeader: true, IsComplete: true, ActualEvaluations: 6, ExpectedEvaluations: 6},
			{Name: "judge2", ActualEvaluations: 5, ExpectedEvaluations: 6, MissingCount: 1},
		},
	}

	embed := BuildCompletenessEmbed(report)

	assert.Equal(t, common.ColorWarning, embed.Color)
	assert.Contains(t, embed.Description, "1 of 2 decision makers are done")
	assert.Contains(t, embed.Description, "✅ **judge1** (leader): 6/6")
	assert.Contains(t, embed.Description, "⏳ **judge2**: 5/6")

	report.IsComplete = true
	assert.Equal(t, common.ColorSuccess, BuildCompletenessEmbed(report).Color)
}

func TestBuildResultsEmbed(t *testing.T) {
	t.Run("ranking with tied winners", func(t *testing.T) {
		results := &models.EventResults{
			Event: &models.Event{Name: "Vendor selection"},
			Ranking: []models.RankedAlternative{
				{Code: "A", Name: "Alpha", TotalPoints: 1.5, FinalRank: 1},
				{Code: "B", Name: "Beta", TotalPoints: 1.5, FinalRank: 1},
				{Code: "C", Name: "Gamma", TotalPoints: 0, FinalRank: 3},
			},
		}

		embed := BuildResultsEmbed(results)

		assert.Equal(t, "🏆 Vendor selection", embed.Title)
		assert.Contains(t, embed.Description, "1.5000")
		require.Len(t, embed.Fields, 1)
		assert.Equal(t, "Alpha, Beta", embed.Fields[0].Value)
	})

	t.Run("never calculated", func(t *testing.T) {
		embed := BuildResultsEmbed(&models.EventResults{})
		assert.Equal(t, "This event has not been calculated yet.", embed.Description)
		assert.Empty(t, embed.Fields)
	})
}

func TestBuildJudgeMatrixEmbed(t *testing.T) {
	matrix := &models.JudgeMatrix{
		Rows: []models.JudgeMatrixRow{
			{Name: "Alpha", SValue: 2, VValue: 0.6667, Rank: 1},
			{Name: "Beta", SValue: 1, VValue: 0.3333, Rank: 2},
		},
	}

	embed := BuildJudgeMatrixEmbed(1, 10, matrix)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "🥇 Alpha", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "V = 0.6667")

	assert.Equal(t, "No results for this decision maker yet.", BuildJudgeMatrixEmbed(1, 10, nil).Description)
}

func TestCommand(t *testing.T) {
	command := Command()
	require.Len(t, command.Options, 3)
	assert.Equal(t, "completeness", command.Options[0].Name)
	assert.Equal(t, "calculate", command.Options[1].Name)
	assert.Equal(t, "results", command.Options[2].Name)
	assert.True(t, command.Options[2].Options[0].Required)
	assert.False(t, command.Options[2].Options[1].Required)
}
