package ranking

import (
	"fmt"
	"strings"
	"time"

	"groupdss/bot/common"
	"groupdss/models"

	"github.com/bwmarrin/discordgo"
)

// BuildCompletenessEmbed lists every judge's evaluation progress
func BuildCompletenessEmbed(report *models.CompletenessReport) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📋 Evaluation progress for event %d", report.EventID),
		Color:     common.ColorWarning,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if report.IsComplete {
		embed.Color = common.ColorSuccess
	}

	if report.TotalJudges == 0 {
		embed.Description = "No decision makers are assigned to this event."
		return embed
	}

	var lines []string
	for _, judge := range report.Judges {
		status := "✅"
		if !judge.IsComplete {
			status = "⏳"
		}
		leader := ""
		if judge.IsLeader {
			leader = " (leader)"
		}
		lines = append(lines, fmt.Sprintf("%s **%s**%s: %d/%d",
			status, judge.Name, leader, judge.ActualEvaluations, judge.ExpectedEvaluations))
	}

	embed.Description = fmt.Sprintf("%d of %d decision makers are done.\n\n%s",
		report.CompletedJudges, report.TotalJudges, strings.Join(lines, "\n"))
	return embed
}

// BuildResultsEmbed renders the group ranking as a table
func BuildResultsEmbed(results *models.EventResults) *discordgo.MessageEmbed {
	title := "🏆 Group ranking"
	if results.Event != nil {
		title = fmt.Sprintf("🏆 %s", results.Event.Name)
	}

	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(results.Ranking) == 0 {
		embed.Description = "This event has not been calculated yet."
		return embed
	}

	var table strings.Builder
	table.WriteString("```\n")
	table.WriteString(fmt.Sprintf("%-4s %-6s %-20s %10s\n", "", "Code", "Alternative", "Points"))
	table.WriteString(strings.Repeat("-", 43) + "\n")
	for _, ranked := range results.Ranking {
		table.WriteString(fmt.Sprintf("%-4s %-6s %-20s %10s\n",
			fmt.Sprintf("#%d", ranked.FinalRank),
			common.Truncate(ranked.Code, 6),
			common.Truncate(ranked.Name, 20),
			common.FormatPoints(ranked.TotalPoints)))
	}
	table.WriteString("```")
	embed.Description = table.String()

	var winners []string
	for _, ranked := range results.Ranking {
		if ranked.FinalRank == 1 {
			winners = append(winners, ranked.Name)
		}
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  common.FormatRank(1) + " Preferred",
		Value: strings.Join(winners, ", "),
	})

	return embed
}

// BuildJudgeMatrixEmbed shows one judge's S, V and rank per alternative
func BuildJudgeMatrixEmbed(eventID, judgeID int64, matrix *models.JudgeMatrix) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🧮 Weighted Product of user %d, event %d", judgeID, eventID),
		Color:     common.ColorInfo,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if matrix == nil || len(matrix.Rows) == 0 {
		embed.Description = "No results for this decision maker yet."
		return embed
	}

	for _, row := range matrix.Rows {
		if len(embed.Fields) == common.MaxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s %s", common.FormatRank(row.Rank), common.Truncate(row.Name, 40)),
			Value: fmt.Sprintf("S = %s\nV = %s",
				common.FormatPoints(row.SValue), common.FormatPoints(row.VValue)),
			Inline: true,
		})
	}
	return embed
}
