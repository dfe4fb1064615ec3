package engine

import (
	"fmt"
	"strings"

	"groupdss/models"
)

// CheckCompleteness compares every judge's evaluation count with the
// |alternatives| x |criteria| evaluations a full scoring requires. An event
// without alternatives or criteria expects zero evaluations, so its judges are
// trivially complete; the scoring stages reject such events later.
func CheckCompleteness(eventID int64, judges []models.Judge, alternativeCount, criterionCount int, counts map[int64]int) *models.CompletenessReport {
	expected := alternativeCount * criterionCount

	report := &models.CompletenessReport{
		EventID:     eventID,
		TotalJudges: len(judges),
		Judges:      make([]models.JudgeCompleteness, 0, len(judges)),
	}

	for _, judge := range judges {
		actual := counts[judge.UserID]
		status := models.JudgeCompleteness{
			UserID:              judge.UserID,
			Name:                judge.Name,
			IsLeader:            judge.IsLeader,
			IsComplete:          actual == expected,
			ActualEvaluations:   actual,
			ExpectedEvaluations: expected,
			MissingCount:        max(0, expected-actual),
		}
		if status.IsComplete {
			report.CompletedJudges++
		}
		report.Judges = append(report.Judges, status)
	}

	report.IsComplete = report.CompletedJudges == report.TotalJudges
	return report
}

// IncompleteError describes which judges block a calculation
func IncompleteError(report *models.CompletenessReport) error {
	var pending []string
	for _, judge := range report.Judges {
		if judge.IsComplete {
			continue
		}
		if judge.MissingCount > 0 {
			pending = append(pending, fmt.Sprintf("%s is missing %d of %d evaluations",
				judge.Name, judge.MissingCount, judge.ExpectedEvaluations))
		} else {
			pending = append(pending, fmt.Sprintf("%s has %d evaluations but %d are expected",
				judge.Name, judge.ActualEvaluations, judge.ExpectedEvaluations))
		}
	}

	return NewError(ErrIncompleteData,
		"cannot calculate event %d: %d of %d decision makers have not completed their evaluations (%s)",
		report.EventID, report.TotalJudges-report.CompletedJudges, report.TotalJudges, strings.Join(pending, "; "))
}
