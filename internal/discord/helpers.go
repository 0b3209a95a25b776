package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
)

// Footer constants for standardized embed footers
const (
	FooterPhoenixBot      = "PhoenixBot"
	FooterPhoenixBotAdmin = "PhoenixBot Admin"
)

// createEmbed creates a standard embed with optional footer customization.
// An empty footerText defaults to FooterPhoenixBot.
//
// Usage:
//
//	embed := createEmbed("Stock Added", msg, panel.ColorSuccess, "")
//	sendEmbed(s, i, embed)
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterPhoenixBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: panel.Truncate(description, panel.MaxDescLength),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// interactionContext scopes a context to the interaction for logging
func interactionContext(i *discordgo.InteractionCreate) context.Context {
	return logger.WithInteraction(context.Background(), i.ID, i.GuildID)
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

// actorFromInteraction describes who triggered i. Outside a guild the actor
// carries no roles and no administrator flag.
func actorFromInteraction(i *discordgo.InteractionCreate) regear.Actor {
	actor := regear.Actor{UserID: getInteractionUser(i).ID}
	if i.Member != nil {
		actor.RoleIDs = i.Member.Roles
		actor.IsAdmin = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	}
	return actor
}

// subcommand returns the invoked subcommand and its options
func subcommand(i *discordgo.InteractionCreate) (string, []*discordgo.ApplicationCommandInteractionDataOption) {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 0 || opts[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", opts
	}
	return opts[0].Name, opts[0].Options
}

// optionMap indexes options by name
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// stringOption returns the named option's raw value or "". Works for string,
// user, role and channel options, whose values are ids.
func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	o, ok := opts[name]
	if !ok {
		return ""
	}
	return optionString(o)
}

func optionString(o *discordgo.ApplicationCommandInteractionDataOption) string {
	if v, ok := o.Value.(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// formatFriendlyError maps an error to the message shown to the acting user.
// Errors the user cannot act on collapse to MsgGenericError.
func formatFriendlyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrPermissionDenied):
		if msg := detail(err, domain.ErrMsgPermissionDenied); msg != "" {
			return "🔒 " + msg
		}
		return MsgPermissionDenied
	case errors.Is(err, domain.ErrReservationNotFound):
		return MsgRegearNotFound
	case errors.Is(err, domain.ErrInventoryEmpty):
		return MsgInventoryEmpty
	case errors.Is(err, domain.ErrInvalidTransition):
		return MsgInvalidTransition
	case errors.Is(err, domain.ErrInsufficientStock):
		return MsgInsufficientStock
	case domain.IsUserFacing(err):
		if msg := detail(err, domain.ErrMsgValidation); msg != "" {
			return "⚠️ " + msg
		}
		return "⚠️ " + err.Error()
	default:
		return MsgGenericError
	}
}

// detail strips the sentinel prefix from a wrapped error message
func detail(err error, sentinel string) string {
	msg, ok := strings.CutPrefix(err.Error(), sentinel+": ")
	if !ok {
		return ""
	}
	return msg
}

// respondEphemeral answers an interaction with a message only the invoker sees
func respondEphemeral(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
}

// respondPanel answers an interaction with a new message rendering p
func respondPanel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, p panel.Panel) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(p),
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
}

// followupEphemeral sends a private message after the interaction was acknowledged
func followupEphemeral(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgFollowupFailed, "error", err)
	}
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before any operation that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
func deferResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
		return false
	}
	return true
}

// sendEmbed fills a deferred response with embed
func sendEmbed(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
}

// respondError fills a deferred response with a friendly error
func respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	message := formatFriendlyError(err)
	if _, editErr := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}, discordgo.WithContext(ctx)); editErr != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", editErr)
	}
}

// outcome classifies err for interaction metrics
func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case domain.IsUserFacing(err):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
