package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"groupdss/engine"
	"groupdss/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// writeStructured encodes v as YAML or JSON. ok is false for the table format.
func writeStructured(w io.Writer, format string, v any) (ok bool, err error) {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return true, err
		}
		return true, encoder.Close()
	case FormatTable:
		return false, nil
	default:
		return true, fmt.Errorf("unknown format %q, want table, yaml or json", format)
	}
}

func renderCompleteness(w io.Writer, format string, report *models.CompletenessReport) error {
	if ok, err := writeStructured(w, format, report); ok {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"User", "Name", "Leader", "Evaluations", "Missing", "Complete"})
	for _, judge := range report.Judges {
		table.Append([]string{
			strconv.FormatInt(judge.UserID, 10),
			judge.Name,
			strconv.FormatBool(judge.IsLeader),
			fmt.Sprintf("%d/%d", judge.ActualEvaluations, judge.ExpectedEvaluations),
			strconv.Itoa(judge.MissingCount),
			strconv.FormatBool(judge.IsComplete),
		})
	}
	table.Render()

	summary := fmt.Sprintf("%d of %d decision makers complete\n", report.CompletedJudges, report.TotalJudges)
	if report.IsComplete {
		color.New(color.FgGreen).Fprint(w, summary)
	} else {
		color.New(color.FgYellow).Fprint(w, summary)
	}
	return nil
}

func renderResults(w io.Writer, format string, results *models.EventResults) error {
	if ok, err := writeStructured(w, format, results); ok {
		return err
	}

	if len(results.Ranking) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No results stored for this event yet.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Code", "Alternative", "Borda points"})
	for _, ranked := range results.Ranking {
		table.Append([]string{
			strconv.Itoa(ranked.FinalRank),
			ranked.Code,
			ranked.Name,
			formatFloat(ranked.TotalPoints),
		})
	}
	table.Render()

	if results.Matrix == nil {
		return nil
	}

	fmt.Fprintln(w)
	header := []string{"Alternative"}
	for rank := 1; rank <= results.Matrix.MaxRank; rank++ {
		header = append(header, fmt.Sprintf("V@%d", rank))
	}
	header = append(header, "Points", "Borda value")

	matrix := tablewriter.NewWriter(w)
	matrix.SetHeader(header)
	for _, row := range results.Matrix.Rows {
		line := []string{row.Code}
		for rank := 1; rank <= results.Matrix.MaxRank; rank++ {
			line = append(line, formatFloat(row.RankVSums[rank]))
		}
		line = append(line, formatFloat(row.BordaPoints), formatFloat(row.BordaValue))
		matrix.Append(line)
	}
	matrix.Render()
	return nil
}

func renderJudgeMatrix(w io.Writer, format string, matrix *models.JudgeMatrix) error {
	if matrix == nil {
		if ok, err := writeStructured(w, format, []models.JudgeMatrixRow{}); ok {
			return err
		}
		color.New(color.FgYellow).Fprintln(w, "No results stored for this decision maker yet.")
		return nil
	}
	if ok, err := writeStructured(w, format, matrix); ok {
		return err
	}

	header := []string{"Alternative"}
	for _, criterion := range matrix.Criteria {
		header = append(header, criterion.Name)
	}
	header = append(header, "S", "V", "Rank")

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	for _, row := range matrix.Rows {
		line := []string{row.Code}
		for _, cell := range row.Cells {
			line = append(line, fmt.Sprintf("%s^%s", formatScore(cell.Score), formatFloat(cell.Power)))
		}
		line = append(line, formatFloat(row.SValue), formatFloat(row.VValue), strconv.Itoa(row.Rank))
		table.Append(line)
	}
	table.Render()
	return nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func printSuccess(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, "✓ "+format+"\n", args...)
}

// printFailure reports err, naming the engine error kind when there is one
func printFailure(w io.Writer, err error) {
	var calcErr *engine.CalculationError
	if errors.As(err, &calcErr) {
		color.New(color.FgRed).Fprintf(w, "✗ %s: %s\n", calcErr.Kind, calcErr.Reason)
		return
	}
	color.New(color.FgRed).Fprintf(w, "✗ %v\n", err)
}
