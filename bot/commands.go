package bot

import (
	"fmt"

	"groupdss/bot/common"
	"groupdss/bot/features/ranking"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		ranking.Command(),
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	log.WithField("count", len(commands)).Info("Registered slash commands")
	return nil
}

// handleCommands routes slash commands to their features
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ranking":
		b.ranking.HandleCommand(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}
