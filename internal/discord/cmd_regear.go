package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
)

// RegearCommand returns the regear command definition and handler
func RegearCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:         CommandRegear,
		Description:  "Reserve gear from the guild inventory for a member",
		DMPermission: new(bool),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        OptionRecipient,
				Description: "Member receiving the gear (default: you)",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if i.GuildID == "" {
			respondEphemeral(ctx, s, i, MsgGuildOnly)
			return nil
		}

		recipientID := getInteractionUser(i).ID
		if id := stringOption(optionMap(i.ApplicationCommandData().Options), OptionRecipient); id != "" {
			recipientID = id
		}

		p, err := svc.Wizard.Start(ctx, i.GuildID, recipientID)
		if err != nil {
			respondEphemeral(ctx, s, i, formatFriendlyError(err))
			return err
		}

		// The wizard is private to the issuer
		p.Ephemeral = true
		respondPanel(ctx, s, i, p)
		return nil
	}

	return cmd, handler
}

// RegearStatusCommand returns the regear-status command definition and handler
func RegearStatusCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:         CommandRegearStatus,
		Description:  "Show the state of a regear",
		DMPermission: new(bool),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionID,
				Description: "Regear ID (shown in the panel footer)",
				Required:    true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		id := stringOption(optionMap(i.ApplicationCommandData().Options), OptionID)

		res, err := svc.Coordinator.Get(ctx, id)
		if err == nil && res.GuildID != i.GuildID {
			err = fmt.Errorf("%w: %s", domain.ErrReservationNotFound, id)
		}
		if err != nil {
			respondEphemeral(ctx, s, i, formatFriendlyError(err))
			return err
		}

		respondPanel(ctx, s, i, regear.StatusPanel(res))
		return nil
	}

	return cmd, handler
}
