package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

// Messenger delivers regear panels through a discordgo session
type Messenger struct {
	session *discordgo.Session
}

// NewMessenger creates a Messenger
func NewMessenger(s *discordgo.Session) *Messenger {
	return &Messenger{session: s}
}

// CreatePanel posts p in channelID
func (m *Messenger) CreatePanel(ctx context.Context, channelID string, p panel.Panel) (*domain.SurfaceRef, error) {
	return m.send(ctx, channelID, p, nil)
}

// UpdatePanel edits the message at ref in place
func (m *Messenger) UpdatePanel(ctx context.Context, ref domain.SurfaceRef, p panel.Panel) error {
	edit := messageEdit(channelMessage{channelID: ref.ChannelID, messageID: ref.MessageID}, p)
	if _, err := m.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return classifyError(err)
	}
	return nil
}

// DeletePanel removes the message at ref
func (m *Messenger) DeletePanel(ctx context.Context, ref domain.SurfaceRef) error {
	if err := m.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx)); err != nil {
		return classifyError(err)
	}
	return nil
}

// NotifyUser sends p as a direct message. When the user does not accept
// direct messages, p is posted in fallbackChannelID instead.
func (m *Messenger) NotifyUser(ctx context.Context, userID, fallbackChannelID string, p panel.Panel) (*domain.SurfaceRef, error) {
	ref, err := m.directMessage(ctx, userID, p)
	if err == nil {
		return ref, nil
	}
	if fallbackChannelID == "" {
		return nil, err
	}

	logger.FromContext(ctx).Warn(LogMsgDirectMessageFailed, "user_id", userID, "error", err)
	return m.send(ctx, fallbackChannelID, p, nil)
}

// SendAuditEntry posts p with an optional attachment
func (m *Messenger) SendAuditEntry(ctx context.Context, channelID string, p panel.Panel, attachment *panel.Attachment) (*domain.SurfaceRef, error) {
	return m.send(ctx, channelID, p, attachment)
}

func (m *Messenger) directMessage(ctx context.Context, userID string, p panel.Panel) (*domain.SurfaceRef, error) {
	ch, err := m.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, classifyError(err)
	}
	return m.send(ctx, ch.ID, p, nil)
}

func (m *Messenger) send(ctx context.Context, channelID string, p panel.Panel, attachment *panel.Attachment) (*domain.SurfaceRef, error) {
	msg, err := m.session.ChannelMessageSendComplex(channelID, messageSend(p, attachment), discordgo.WithContext(ctx))
	if err != nil {
		return nil, classifyError(err)
	}
	return &domain.SurfaceRef{ChannelID: channelID, MessageID: msg.ID}, nil
}

// classifyError maps a Discord REST failure to domain.ErrSurfaceGone when the
// addressed message or channel is gone and to domain.ErrDeliveryFailure otherwise
func classifyError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
				return fmt.Errorf("%w: %w", domain.ErrSurfaceGone, err)
			}
		}
		if restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", domain.ErrSurfaceGone, err)
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrDeliveryFailure, err)
}
