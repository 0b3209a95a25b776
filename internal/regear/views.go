package regear

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

// Messenger delivers panels to the chat platform. Implementations return an
// error wrapping domain.ErrSurfaceGone when the addressed message or channel
// no longer exists.
type Messenger interface {
	CreatePanel(ctx context.Context, channelID string, p panel.Panel) (*domain.SurfaceRef, error)
	UpdatePanel(ctx context.Context, ref domain.SurfaceRef, p panel.Panel) error
	DeletePanel(ctx context.Context, ref domain.SurfaceRef) error

	// NotifyUser sends p by direct message, falling back to a mention in
	// fallbackChannelID when direct delivery is refused
	NotifyUser(ctx context.Context, userID, fallbackChannelID string, p panel.Panel) (*domain.SurfaceRef, error)

	SendAuditEntry(ctx context.Context, channelID string, p panel.Panel, attachment *panel.Attachment) (*domain.SurfaceRef, error)
}

// AuditChannelSource resolves a guild's audit destination, "" when unset
type AuditChannelSource interface {
	AuditChannel(ctx context.Context, guildID string) (string, error)
}

// Origin is where the wizard was confirmed
type Origin struct {
	ChannelID string
}

// View is one rendered surface of a reservation
type View interface {
	Kind() domain.SurfaceKind

	// Open renders the view for a new reservation. A nil ref means the view
	// was intentionally not created.
	Open(ctx context.Context, res *domain.Reservation, origin Origin) (*domain.SurfaceRef, error)

	// Sync brings the view in line with res and returns the ref to store in
	// place of ref. It returns a ref even when it fails.
	Sync(ctx context.Context, res *domain.Reservation, ref *domain.SurfaceRef) (*domain.SurfaceRef, error)
}

// DefaultViews returns the issuer, recipient and audit views
func DefaultViews(m Messenger, audits AuditChannelSource) []View {
	return []View{NewIssuerView(m), NewRecipientView(m), NewAuditView(m, audits)}
}

// IssuerView is the control panel in the channel the wizard ran in
type IssuerView struct {
	messenger Messenger
}

// NewIssuerView creates an IssuerView
func NewIssuerView(m Messenger) *IssuerView {
	return &IssuerView{messenger: m}
}

func (v *IssuerView) Kind() domain.SurfaceKind { return domain.SurfaceIssuer }

func (v *IssuerView) Open(ctx context.Context, res *domain.Reservation, origin Origin) (*domain.SurfaceRef, error) {
	if origin.ChannelID == "" {
		return nil, nil
	}
	return v.messenger.CreatePanel(ctx, origin.ChannelID, IssuerPanel(res))
}

func (v *IssuerView) Sync(ctx context.Context, res *domain.Reservation, ref *domain.SurfaceRef) (*domain.SurfaceRef, error) {
	return updateInPlace(ctx, v.messenger, ref, IssuerPanel(res))
}

// RecipientView is the notification delivered to the recipient
type RecipientView struct {
	messenger Messenger
}

// NewRecipientView creates a RecipientView
func NewRecipientView(m Messenger) *RecipientView {
	return &RecipientView{messenger: m}
}

func (v *RecipientView) Kind() domain.SurfaceKind { return domain.SurfaceRecipient }

func (v *RecipientView) Open(ctx context.Context, res *domain.Reservation, origin Origin) (*domain.SurfaceRef, error) {
	return v.messenger.NotifyUser(ctx, res.RecipientID, origin.ChannelID, RecipientPanel(res))
}

func (v *RecipientView) Sync(ctx context.Context, res *domain.Reservation, ref *domain.SurfaceRef) (*domain.SurfaceRef, error) {
	return updateInPlace(ctx, v.messenger, ref, RecipientPanel(res))
}

// AuditView is the guild's audit log entry. A completion posts a new entry
// carrying the CSV export and removes the reserved one; a cancellation
// removes the entry.
type AuditView struct {
	messenger Messenger
	audits    AuditChannelSource
}

// NewAuditView creates an AuditView
func NewAuditView(m Messenger, audits AuditChannelSource) *AuditView {
	return &AuditView{messenger: m, audits: audits}
}

func (v *AuditView) Kind() domain.SurfaceKind { return domain.SurfaceAudit }

func (v *AuditView) Open(ctx context.Context, res *domain.Reservation, _ Origin) (*domain.SurfaceRef, error) {
	channelID, err := v.audits.AuditChannel(ctx, res.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve audit channel: %w", err)
	}
	if channelID == "" {
		return nil, nil
	}
	return v.messenger.SendAuditEntry(ctx, channelID, AuditPanel(res), nil)
}

func (v *AuditView) Sync(ctx context.Context, res *domain.Reservation, ref *domain.SurfaceRef) (*domain.SurfaceRef, error) {
	switch res.Status {
	case domain.RegearCompleted:
		return v.replace(ctx, res, ref)
	case domain.RegearCancelled:
		if ref == nil {
			return nil, nil
		}
		if err := v.messenger.DeletePanel(ctx, *ref); err != nil && !errors.Is(err, domain.ErrSurfaceGone) {
			return ref, err
		}
		return nil, nil
	default:
		return updateInPlace(ctx, v.messenger, ref, AuditPanel(res))
	}
}

func (v *AuditView) replace(ctx context.Context, res *domain.Reservation, ref *domain.SurfaceRef) (*domain.SurfaceRef, error) {
	channelID, err := v.audits.AuditChannel(ctx, res.GuildID)
	if err != nil {
		return ref, fmt.Errorf("failed to resolve audit channel: %w", err)
	}
	if channelID == "" && ref != nil {
		channelID = ref.ChannelID
	}
	if channelID == "" {
		return nil, nil
	}

	attachment, err := AuditCSV(res)
	if err != nil {
		return ref, err
	}
	posted, err := v.messenger.SendAuditEntry(ctx, channelID, AuditPanel(res), attachment)
	if err != nil {
		return ref, err
	}

	if ref != nil {
		if err := v.messenger.DeletePanel(ctx, *ref); err != nil && !errors.Is(err, domain.ErrSurfaceGone) {
			return posted, fmt.Errorf("failed to remove reserved audit entry: %w", err)
		}
	}
	return posted, nil
}

// updateInPlace edits the message at ref. A vanished message clears the ref.
func updateInPlace(ctx context.Context, m Messenger, ref *domain.SurfaceRef, p panel.Panel) (*domain.SurfaceRef, error) {
	if ref == nil {
		return nil, nil
	}
	if err := m.UpdatePanel(ctx, *ref, p); err != nil {
		if errors.Is(err, domain.ErrSurfaceGone) {
			return nil, err
		}
		return ref, err
	}
	return ref, nil
}
