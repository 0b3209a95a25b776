package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

var adminPermission = int64(discordgo.PermissionAdministrator)

// RegearConfigCommand returns the regear-config command definition and handler.
// Every subcommand is restricted to administrators.
func RegearConfigCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	roleOption := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        OptionRole,
			Description: "Role to change",
			Required:    true,
		},
	}

	cmd := &discordgo.ApplicationCommand{
		Name:                     CommandRegearConfig,
		Description:              "Configure regears for this server",
		DefaultMemberPermissions: &adminPermission,
		DMPermission:             new(bool),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandAuditChannel,
				Description: "Set the channel that receives the regear audit log",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         OptionChannel,
						Description:  "Audit log channel",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandGrant,
				Description: "Allow a role to complete and cancel any regear and to add stock",
				Options:     roleOption,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandRevoke,
				Description: "Remove a role's regear permissions",
				Options:     roleOption,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if i.GuildID == "" {
			respondEphemeral(ctx, s, i, MsgGuildOnly)
			return nil
		}
		if !actorFromInteraction(i).IsAdmin {
			respondEphemeral(ctx, s, i, MsgPermissionDenied)
			return domain.ErrPermissionDenied
		}

		name, opts := subcommand(i)
		options := optionMap(opts)

		var (
			msg string
			err error
		)
		switch name {
		case SubcommandAuditChannel:
			channelID := stringOption(options, OptionChannel)
			if err = svc.Guild.SetAuditChannel(ctx, i.GuildID, channelID); err == nil {
				msg = fmt.Sprintf("Regear audit entries will be posted in <#%s>.", channelID)
			}
		case SubcommandGrant:
			roleID := stringOption(options, OptionRole)
			err = grantAll(ctx, svc, i.GuildID, roleID)
			if err == nil {
				msg = fmt.Sprintf("<@&%s> can now manage regears and inventory.", roleID)
			}
		case SubcommandRevoke:
			roleID := stringOption(options, OptionRole)
			err = revokeAll(ctx, svc, i.GuildID, roleID)
			if err == nil {
				msg = fmt.Sprintf("<@&%s> can no longer manage regears and inventory.", roleID)
			}
		default:
			return nil
		}

		if err != nil {
			respondEphemeral(ctx, s, i, formatFriendlyError(err))
			return err
		}

		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{createEmbed(TitleRegearConfig, msg, panel.ColorInfo, FooterPhoenixBotAdmin)},
				Flags:  discordgo.MessageFlagsEphemeral,
			},
		}, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("%s: %w", LogMsgRespondFailed, err)
		}
		return nil
	}

	return cmd, handler
}

// managedPermissions are granted and revoked together
var managedPermissions = []string{domain.PermissionRegear, domain.PermissionInventory}

func grantAll(ctx context.Context, svc *Services, guildID, roleID string) error {
	for _, action := range managedPermissions {
		if err := svc.Guild.Grant(ctx, guildID, roleID, action); err != nil {
			return err
		}
	}
	return nil
}

func revokeAll(ctx context.Context, svc *Services, guildID, roleID string) error {
	for _, action := range managedPermissions {
		if err := svc.Guild.Revoke(ctx, guildID, roleID, action); err != nil {
			return err
		}
	}
	return nil
}
