package ranking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"groupdss/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const commandTimeout = 30 * time.Second

func optionInt(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, bool) {
	for _, opt := range options {
		if opt.Name == name {
			return opt.IntValue(), true
		}
	}
	return 0, false
}

func (f *Feature) handleCompleteness(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	eventID, _ := optionInt(options, "event")

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	report, err := f.decisionService.CheckCompleteness(ctx, eventID)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "completeness check failed"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildCompletenessEmbed(report), false); err != nil {
		log.WithError(err).Error("Failed to send completeness embed")
	}
}

func (f *Feature) handleCalculate(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	eventID, _ := optionInt(options, "event")

	if err := common.DeferResponse(s, i, false); err != nil {
		log.WithError(err).Error("Failed to defer calculate response")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	discordID, err := strconv.ParseInt(common.InteractionUserID(i), 10, 64)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "invalid discord user id"), true)
		return
	}

	user, err := f.decisionService.FindUserByDiscordID(ctx, discordID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "user lookup failed"), true)
		return
	}
	if user == nil {
		common.HandleError(s, i, common.NewUserError(
			"Your Discord account is not linked to a decision maker.",
			fmt.Sprintf("discord user %d is not linked", discordID),
		), true)
		return
	}

	if err := f.decisionService.Calculate(ctx, eventID, &user.ID); err != nil {
		botErr := common.FromServiceError(err, "calculation failed")
		botErr.Context = log.Fields{"event_id": eventID, "user_id": user.ID}
		common.HandleError(s, i, botErr, true)
		return
	}

	results, err := f.decisionService.GetResults(ctx, eventID)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "reading results failed"), true)
		return
	}

	embed := BuildResultsEmbed(results)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Calculated by %s", user.Name)}
	if _, err := common.FollowUpWithEmbed(s, i, embed, false); err != nil {
		log.WithError(err).Error("Failed to send results embed")
	}
}

func (f *Feature) handleResults(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	eventID, _ := optionInt(options, "event")

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if judgeID, ok := optionInt(options, "judge"); ok {
		matrix, err := f.decisionService.GetJudgeMatrix(ctx, eventID, judgeID)
		if err != nil {
			common.HandleError(s, i, common.FromServiceError(err, "reading judge matrix failed"), false)
			return
		}
		if err := common.RespondWithEmbed(s, i, BuildJudgeMatrixEmbed(eventID, judgeID, matrix), true); err != nil {
			log.WithError(err).Error("Failed to send judge matrix embed")
		}
		return
	}

	results, err := f.decisionService.GetResults(ctx, eventID)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "reading results failed"), false)
		return
	}
	if err := common.RespondWithEmbed(s, i, BuildResultsEmbed(results), false); err != nil {
		log.WithError(err).Error("Failed to send results embed")
	}
}
