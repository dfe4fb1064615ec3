package bot

import (
	"context"
	"fmt"

	"groupdss/bot/features/ranking"
	"groupdss/events"
	"groupdss/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token            string
	GuildID          string
	ResultsChannelID string // empty disables announcements
}

// Bot is the Discord front end of the decision service
type Bot struct {
	config          Config
	session         *discordgo.Session
	decisionService service.DecisionService
	ranking         *ranking.Feature
	eventBus        *events.Bus
}

// New connects to Discord, registers the slash commands and, when a results
// channel is configured, announces every completed calculation there
func New(config Config, decisionService service.DecisionService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:          config,
		session:         dg,
		decisionService: decisionService,
		ranking:         ranking.NewFeature(decisionService),
		eventBus:        eventBus,
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	if config.ResultsChannelID != "" {
		eventBus.Subscribe(events.EventTypeCalculationCompleted, bot.announceResults)
		log.WithField("channel_id", config.ResultsChannelID).Info("Result announcements enabled")
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// announceResults posts the committed ranking of a finished calculation
func (b *Bot) announceResults(ctx context.Context, event events.Event) {
	completed, ok := event.(events.CalculationCompletedEvent)
	if !ok {
		return
	}

	results, err := b.decisionService.GetResults(ctx, completed.EventID)
	if err != nil {
		log.WithError(err).WithField("event_id", completed.EventID).Error("Failed to load results for announcement")
		return
	}

	embed := ranking.BuildResultsEmbed(results)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Run " + completed.RunID}
	if _, err := b.session.ChannelMessageSendEmbed(b.config.ResultsChannelID, embed); err != nil {
		log.WithError(err).WithField("event_id", completed.EventID).Error("Failed to announce results")
	}
}
