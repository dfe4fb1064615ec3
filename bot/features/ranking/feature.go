package ranking

import (
	"groupdss/bot/common"
	"groupdss/service"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the /ranking command
type Feature struct {
	decisionService service.DecisionService
}

// NewFeature creates a new ranking feature instance
func NewFeature(decisionService service.DecisionService) *Feature {
	return &Feature{
		decisionService: decisionService,
	}
}

// HandleCommand handles the /ranking command and its subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: completeness, calculate or results")
		return
	}

	switch options[0].Name {
	case "completeness":
		f.handleCompleteness(s, i, options[0].Options)
	case "calculate":
		f.handleCalculate(s, i, options[0].Options)
	case "results":
		f.handleResults(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// Command describes /ranking for registration with Discord
func Command() *discordgo.ApplicationCommand {
	eventOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "event",
		Description: "Event ID",
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:        "ranking",
		Description: "Group decision rankings",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "completeness",
				Description: "Show which decision makers still have evaluations to submit",
				Options:     []*discordgo.ApplicationCommandOption{eventOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "calculate",
				Description: "Recalculate the group ranking (admin or event leader)",
				Options:     []*discordgo.ApplicationCommandOption{eventOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "results",
				Description: "Show the group ranking or one decision maker's matrix",
				Options: []*discordgo.ApplicationCommandOption{
					eventOption,
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "judge",
						Description: "User ID of a decision maker",
						Required:    false,
					},
				},
			},
		},
	}
}
