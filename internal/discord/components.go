package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/metrics"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
)

// Component metric labels
const (
	componentWizard      = "regear_wizard"
	componentReservation = "regear_reservation"
)

// HandleComponent routes a button or select interaction to the wizard or to
// the reservation lifecycle
func HandleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	data := i.MessageComponentData()
	started := time.Now()

	var (
		name string
		err  error
	)
	switch {
	case regear.IsWizardControl(data.CustomID):
		name = componentWizard
		err = handleWizardControl(ctx, s, i, svc, data)
	default:
		ev, regearID, ok := regear.ParseReservationControl(data.CustomID)
		if !ok {
			logger.FromContext(ctx).Warn(LogMsgUnknownComponent, "custom_id", data.CustomID)
			respondEphemeral(ctx, s, i, MsgSessionLost)
			return
		}
		name = componentReservation
		err = handleReservationControl(ctx, s, i, svc, regearID, ev)
	}

	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgComponentFailed, "custom_id", data.CustomID, "error", err)
	}
	metrics.ObserveInteraction(KindComponent, name, outcome(err), started)
}

// handleWizardControl advances the wizard panel the control belongs to.
// Rejected actions answer privately and leave the panel as it was.
func handleWizardControl(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, data discordgo.MessageComponentInteractionData) error {
	action, err := regear.ParseAction(data.CustomID, data.Values)
	if err != nil {
		respondEphemeral(ctx, s, i, formatFriendlyError(err))
		return err
	}

	current := panelFromMessage(i.Message)
	result, err := svc.Wizard.Apply(ctx, i.GuildID, current, action)
	if err != nil {
		respondEphemeral(ctx, s, i, formatFriendlyError(err))
		return err
	}

	if result.Confirmed == nil {
		return updateMessage(ctx, s, i, result)
	}
	return submitWizard(ctx, s, i, svc, result)
}

// submitWizard reserves a confirmed selection. The wizard is swapped for the
// submitted panel before reserving, so its controls are gone while the views
// open, and a repeated confirm on the same message is turned away.
func submitWizard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, result regear.Result) error {
	log := logger.FromContext(ctx)

	var messageID string
	if i.Message != nil {
		messageID = i.Message.ID
	}
	if !svc.Submissions.Claim(messageID) {
		log.Info(LogMsgDuplicateConfirm, "message_id", messageID)
		respondEphemeral(ctx, s, i, MsgAlreadySubmitted)
		return nil
	}

	if err := updateMessage(ctx, s, i, result); err != nil {
		svc.Submissions.Release(messageID)
		return err
	}

	res, err := svc.Coordinator.Reserve(ctx, regear.ReserveRequest{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		IssuerID:  getInteractionUser(i).ID,
		Selection: *result.Confirmed,
	})
	if err != nil {
		svc.Submissions.Release(messageID)
		restoreWizard(ctx, s, i)
		followupEphemeral(ctx, s, i, formatFriendlyError(err))
		return err
	}
	log.Info(LogMsgWizardConfirmed, "regear_id", res.ID)
	return nil
}

// restoreWizard puts the confirm page back after a rejected submit
func restoreWizard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &i.Message.Content,
		Embeds:     &i.Message.Embeds,
		Components: &i.Message.Components,
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgWizardRestoreFailed, "error", err)
	}
}

func updateMessage(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, result regear.Result) error {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(result.Panel),
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
		return err
	}
	return nil
}

// handleReservationControl applies a lifecycle event from an issuer or
// recipient panel. The coordinator edits the panels itself.
func handleReservationControl(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, regearID string, ev domain.RegearEvent) error {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
		return err
	}

	if _, err := svc.Coordinator.Act(ctx, regearID, ev, actorFromInteraction(i)); err != nil {
		followupEphemeral(ctx, s, i, formatFriendlyError(err))
		return err
	}
	return nil
}
