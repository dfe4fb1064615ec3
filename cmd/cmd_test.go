package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"groupdss/config"
	"groupdss/engine"
	"groupdss/models"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func sampleResults() *models.EventResults {
	return &models.EventResults{
		Event: &models.Event{ID: 1, Name: "Vendor selection"},
		Ranking: []models.RankedAlternative{
			{AlternativeID: 10, Code: "A", Name: "Alpha", TotalPoints: 1.5, FinalRank: 1},
			{AlternativeID: 11, Code: "B", Name: "Beta", TotalPoints: 0.5, FinalRank: 2},
		},
		Matrix: &models.BordaMatrix{
			MaxRank:          2,
			TotalBordaPoints: 2,
			Rows: []models.BordaMatrixRow{
				{AlternativeID: 10, Code: "A", RankVSums: map[int]float64{1: 1.5, 2: 0}, BordaPoints: 1.5, BordaValue: 0.75, FinalRank: 1},
				{AlternativeID: 11, Code: "B", RankVSums: map[int]float64{1: 0.5, 2: 0.5}, BordaPoints: 0.5, BordaValue: 0.25, FinalRank: 2},
			},
		},
	}
}

func TestParseScheduleArgs(t *testing.T) {
	schedule, err := parseScheduleArgs([]string{"1=100", " 2 = 50.5"})
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 100, 2: 50.5}, schedule)

	for _, bad := range [][]string{{"1"}, {"x=1"}, {"1=abc"}, {"1=2", "1=3"}} {
		_, err := parseScheduleArgs(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestParseEventID(t *testing.T) {
	id, err := parseEventID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseEventID("0")
	assert.Error(t, err)
	_, err = parseEventID("abc")
	assert.Error(t, err)
}

func TestRenderResults(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderResults(&buf, FormatTable, sampleResults()))

		out := buf.String()
		assert.Contains(t, out, "ALTERNATIVE")
		assert.Contains(t, out, "Alpha")
		assert.Contains(t, out, "1.500000")
		assert.Contains(t, out, "V@2")
		assert.Contains(t, out, "0.750000")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderResults(&buf, FormatJSON, sampleResults()))

		var decoded models.EventResults
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Ranking, 2)
		assert.Equal(t, "Alpha", decoded.Ranking[0].Name)
		assert.Equal(t, 0.25, decoded.Matrix.Rows[1].BordaValue)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderResults(&buf, FormatYAML, sampleResults()))

		var decoded models.EventResults
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 2, decoded.Ranking[1].FinalRank)
		assert.Equal(t, 2, decoded.Matrix.MaxRank)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, renderResults(&buf, "xml", sampleResults()))
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderResults(&buf, FormatTable, &models.EventResults{}))
		assert.Contains(t, buf.String(), "No results stored")
	})
}

func TestRenderCompleteness(t *testing.T) {
	report := &models.CompletenessReport{
		EventID:         1,
		TotalJudges:     2,
		CompletedJudges: 1,
		Judges: []models.JudgeCompleteness{
			{UserID: 5, Name: "judge1", IsLeader: true, IsComplete: true, ActualEvaluations: 4, ExpectedEvaluations: 4},
			{UserID: 6, Name: "judge2", ActualEvaluations: 3, ExpectedEvaluations: 4, MissingCount: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderCompleteness(&buf, FormatTable, report))
	assert.Contains(t, buf.String(), "3/4")
	assert.Contains(t, buf.String(), "1 of 2 decision makers complete")
}

func TestRenderJudgeMatrix(t *testing.T) {
	matrix := &models.JudgeMatrix{
		Criteria: []models.Criterion{{ID: 1, Name: "Quality"}, {ID: 2, Name: "Price"}},
		Rows: []models.JudgeMatrixRow{{
			Code: "A",
			Cells: []models.CriterionCell{
				{CriterionID: 1, Score: 4, Power: 0.6, Term: 2.297},
				{CriterionID: 2, Score: 2, Power: -0.4, Term: 0.758},
			},
			SValue: 1.741, VValue: 0.6, Rank: 1,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderJudgeMatrix(&buf, FormatTable, matrix))
	assert.Contains(t, buf.String(), "QUALITY")
	assert.Contains(t, buf.String(), "4^0.600000")
	assert.Contains(t, buf.String(), "2^-0.400000")

	buf.Reset()
	require.NoError(t, renderJudgeMatrix(&buf, FormatTable, nil))
	assert.Contains(t, buf.String(), "No results stored")
}

func TestPrintFailure(t *testing.T) {
	var buf bytes.Buffer
	printFailure(&buf, engine.NewError(engine.ErrIncompleteData, "judge2 is missing 1 of 4 evaluations"))
	assert.Equal(t, "✗ incomplete evaluation data: judge2 is missing 1 of 4 evaluations\n", buf.String())

	buf.Reset()
	printFailure(&buf, errors.New("connection refused"))
	assert.Equal(t, "✗ connection refused\n", buf.String())
}

func TestConfigureLogging(t *testing.T) {
	assert.NoError(t, configureLogging("debug", "json"))
	assert.NoError(t, configureLogging("info", "text"))
	assert.Error(t, configureLogging("loud", "text"))
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "calculate", "completeness", "results", "schedule", "migrate"}, names)
}

func TestExecute_ClosesAppOnFailure(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	closed := 0
	a := &app{closers: []func(){func() { closed++ }}}
	root := newRootCmd(a)
	root.SetArgs([]string{"calculate", "not-a-number"})

	var stderr bytes.Buffer
	err := execute(context.Background(), root, a, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "event id must be a positive number")
	assert.Equal(t, 1, closed)
	assert.Empty(t, a.closers)
}
