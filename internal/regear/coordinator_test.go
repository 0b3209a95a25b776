package regear

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/event"
)

func TestCoordinator_ReserveOpensAllViews(t *testing.T) {
	h := newHarness(t)
	key := h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})

	stored, err := h.ledger.Get(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Surfaces.Issuer)
	require.NotNil(t, stored.Surfaces.Recipient)
	require.NotNil(t, stored.Surfaces.Audit)
	assert.Equal(t, testChannel, stored.Surfaces.Issuer.ChannelID)
	assert.Equal(t, "dm-"+testRecipient, stored.Surfaces.Recipient.ChannelID)
	assert.Equal(t, testAudit, stored.Surfaces.Audit.ChannelID)

	issuerMsg, ok := h.messenger.message(stored.Surfaces.Issuer)
	require.True(t, ok)
	_, ok = issuerMsg.Panel.Control(ReservationCustomID(VerbComplete, res.ID))
	assert.True(t, ok)
	_, ok = issuerMsg.Panel.Control(ReservationCustomID(VerbCancel, res.ID))
	assert.True(t, ok)

	recipientMsg, ok := h.messenger.message(stored.Surfaces.Recipient)
	require.True(t, ok)
	_, ok = recipientMsg.Panel.Control(ReservationCustomID(VerbPickup, res.ID))
	assert.True(t, ok)

	assert.Equal(t, 3, h.store.Quantity(key), "nothing is held at reservation time")
	assert.Equal(t, []event.Type{event.RegearReserved}, h.bus.types())
}

func TestCoordinator_ReserveRejectsEmptySelection(t *testing.T) {
	h := newHarness(t)

	_, err := h.coordinator.Reserve(context.Background(), ReserveRequest{
		GuildID:   testGuild,
		ChannelID: testChannel,
		IssuerID:  testIssuer,
		Selection: NewSelection(testRecipient),
	})
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Zero(t, h.store.ReservationCount())
	assert.Empty(t, h.messenger.inChannel(testChannel))
}

func TestCoordinator_RecipientFallsBackToChannel(t *testing.T) {
	h := newHarness(t)
	h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)
	h.messenger.dmBlocked = true

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})

	require.NotNil(t, res.Surfaces.Recipient)
	assert.Equal(t, testChannel, res.Surfaces.Recipient.ChannelID)
	msg, ok := h.messenger.message(res.Surfaces.Recipient)
	require.True(t, ok)
	assert.Equal(t, "mention", msg.Kind)
	assert.Contains(t, msg.Panel.Content, "<@"+testRecipient+">")
	_, ok = msg.Panel.Control(ReservationCustomID(VerbPickup, res.ID))
	assert.True(t, ok)
}

func TestCoordinator_NoAuditChannelConfigured(t *testing.T) {
	h := newHarness(t)
	h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)
	h.coordinator = NewCoordinator(h.ledger, h.bus, DefaultViews(h.messenger, staticAudit{})...)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})
	assert.Nil(t, res.Surfaces.Audit)

	done, err := h.coordinator.Act(context.Background(), res.ID, domain.EventComplete, issuer())
	require.NoError(t, err)
	assert.Equal(t, domain.RegearCompleted, done.Status)
	assert.Nil(t, done.Surfaces.Audit)
}

func TestCoordinator_SurfaceFailuresDoNotBlockReserve(t *testing.T) {
	h := newHarness(t)
	h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)
	h.messenger.failCreate = fmt.Errorf("%w: missing access", domain.ErrDeliveryFailure)
	h.messenger.failAudit = fmt.Errorf("%w: missing access", domain.ErrDeliveryFailure)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})

	assert.Equal(t, domain.RegearReserved, res.Status)
	assert.Nil(t, res.Surfaces.Issuer)
	assert.Nil(t, res.Surfaces.Audit)
	assert.NotNil(t, res.Surfaces.Recipient)
	assert.Equal(t, []event.Type{event.SurfaceFailed, event.SurfaceFailed, event.RegearReserved}, h.bus.types())
}

// Stock vanishes between reservation and completion
func TestCoordinator_ScenarioA_InsufficientStock(t *testing.T) {
	h := newHarness(t)
	key := h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})
	h.store.SetQuantity(key, 0)

	_, err := h.coordinator.Act(context.Background(), res.ID, domain.EventComplete, issuer())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, domain.IsUserFacing(err))

	stored, err := h.ledger.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegearReserved, stored.Status)
	assert.Nil(t, stored.CompletedAt)
	assert.Equal(t, 0, h.store.Quantity(key))

	issuerMsg, ok := h.messenger.message(stored.Surfaces.Issuer)
	require.True(t, ok)
	_, ok = issuerMsg.Panel.Control(ReservationCustomID(VerbComplete, res.ID))
	assert.True(t, ok, "the issuer panel keeps its controls")
	assert.Contains(t, h.bus.types(), event.RegearRejected)
}

// Pickup then completion of a two item regear
func TestCoordinator_ScenarioB_PickupThenComplete(t *testing.T) {
	h := newHarness(t)
	helmetKey := h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)
	swordKey := h.seed("Claymore", domain.SlotMainHand, "T7", 2)

	res := h.reserve(t, map[domain.Slot]Choice{
		domain.SlotHead:     {Name: "Guardian Helmet", Tier: "T7"},
		domain.SlotMainHand: {Name: "Claymore", Tier: "T7"},
	})
	reservedAudit := *res.Surfaces.Audit

	picked, err := h.coordinator.Act(context.Background(), res.ID, domain.EventPickedUp, recipient())
	require.NoError(t, err)
	assert.Equal(t, domain.RegearPickedUp, picked.Status)

	recipientMsg, ok := h.messenger.message(picked.Surfaces.Recipient)
	require.True(t, ok)
	_, ok = recipientMsg.Panel.Control(ReservationCustomID(VerbPickup, res.ID))
	assert.False(t, ok, "pickup control is removed once used")

	done, err := h.coordinator.Act(context.Background(), res.ID, domain.EventComplete, issuer())
	require.NoError(t, err)
	assert.Equal(t, domain.RegearCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	assert.Equal(t, 2, h.store.Quantity(helmetKey))
	assert.Equal(t, 1, h.store.Quantity(swordKey))

	audits := h.messenger.inChannel(testAudit)
	require.Len(t, audits, 1, "exactly one audit entry remains")
	assert.Equal(t, TitleAuditPrefix+"Completed", audits[0].Panel.Title)
	assert.Contains(t, h.messenger.deleted, reservedAudit)
	_, ok = h.messenger.message(&reservedAudit)
	assert.False(t, ok)

	require.NotNil(t, audits[0].Attachment)
	rows, err := csv.NewReader(strings.NewReader(string(audits[0].Attachment.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-03-09", testRecipient, "Guardian Helmet (T7)", "", "", "Claymore (T7)", "", "T7", testIssuer}, rows[1])

	stored, err := h.ledger.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, audits[0].Ref, *stored.Surfaces.Audit)

	issuerMsg, ok := h.messenger.message(stored.Surfaces.Issuer)
	require.True(t, ok)
	assert.Empty(t, issuerMsg.Panel.Rows, "terminal issuer panel has no controls")
	assert.Contains(t, issuerMsg.Panel.Description, "Completed")

	assert.Equal(t, []event.Type{event.RegearReserved, event.RegearPickedUp, event.RegearCompleted}, h.bus.types())
}

// Cancelling an untouched reservation
func TestCoordinator_ScenarioC_Cancel(t *testing.T) {
	h := newHarness(t)
	key := h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})

	cancelled, err := h.coordinator.Act(context.Background(), res.ID, domain.EventCancel, issuer())
	require.NoError(t, err)
	assert.Equal(t, domain.RegearCancelled, cancelled.Status)
	assert.Equal(t, 3, h.store.Quantity(key))

	assert.Empty(t, h.messenger.inChannel(testAudit))
	stored, err := h.ledger.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Surfaces.Audit)

	recipientMsg, ok := h.messenger.message(stored.Surfaces.Recipient)
	require.True(t, ok)
	assert.Equal(t, "Your regear was cancelled.", recipientMsg.Panel.Description)
	assert.Empty(t, recipientMsg.Panel.Rows)

	_, err = h.coordinator.Act(context.Background(), res.ID, domain.EventComplete, issuer())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 3, h.store.Quantity(key))
}

// A cancel issued while the views are still opening runs after they are stored
func TestCoordinator_CancelWaitsForOpeningViews(t *testing.T) {
	h := newHarness(t)
	key := h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)
	h.messenger.notifyStarted = make(chan struct{})
	h.messenger.notifyGate = make(chan struct{})

	sel := NewSelection(testRecipient)
	sel.Page = TotalPages
	sel.Tier = "T7"
	sel.Items[domain.SlotHead] = Choice{Name: "Guardian Helmet", Tier: "T7"}

	reserved := make(chan error, 1)
	go func() {
		_, err := h.coordinator.Reserve(context.Background(), ReserveRequest{
			GuildID:   testGuild,
			ChannelID: testChannel,
			IssuerID:  testIssuer,
			Selection: sel,
		})
		reserved <- err
	}()
	<-h.messenger.notifyStarted

	issuerPanels := h.messenger.inChannel(testChannel)
	require.Len(t, issuerPanels, 1)
	var regearID string
	for _, row := range issuerPanels[0].Panel.Rows {
		for _, c := range row.Controls {
			if _, id, ok := ParseReservationControl(c.CustomID); ok {
				regearID = id
			}
		}
	}
	require.NotEmpty(t, regearID)

	cancelled := make(chan error, 1)
	go func() {
		_, err := h.coordinator.Act(context.Background(), regearID, domain.EventCancel, issuer())
		cancelled <- err
	}()

	select {
	case err := <-cancelled:
		t.Fatalf("cancel finished before the views were stored: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(h.messenger.notifyGate)
	require.NoError(t, <-reserved)
	require.NoError(t, <-cancelled)

	assert.Equal(t, 3, h.store.Quantity(key))
	assert.Empty(t, h.messenger.inChannel(testAudit))
	assert.Equal(t, []event.Type{event.RegearReserved, event.RegearCancelled}, h.bus.types())

	stored, err := h.ledger.Get(context.Background(), regearID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegearCancelled, stored.Status)
	assert.Nil(t, stored.Surfaces.Audit)

	issuerMsg, ok := h.messenger.message(stored.Surfaces.Issuer)
	require.True(t, ok)
	_, ok = issuerMsg.Panel.Control(ReservationCustomID(VerbCancel, regearID))
	assert.False(t, ok)

	recipientMsg, ok := h.messenger.message(stored.Surfaces.Recipient)
	require.True(t, ok)
	_, ok = recipientMsg.Panel.Control(ReservationCustomID(VerbPickup, regearID))
	assert.False(t, ok)
}

func TestCoordinator_MissingSurfacesAreSkipped(t *testing.T) {
	h := newHarness(t)
	h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})
	require.NoError(t, h.messenger.DeletePanel(context.Background(), *res.Surfaces.Issuer))
	require.NoError(t, h.messenger.DeletePanel(context.Background(), *res.Surfaces.Audit))

	done, err := h.coordinator.Act(context.Background(), res.ID, domain.EventCancel, issuer())
	require.NoError(t, err)
	assert.Equal(t, domain.RegearCancelled, done.Status)

	stored, err := h.ledger.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Surfaces.Issuer, "a vanished panel is forgotten")
	assert.Nil(t, stored.Surfaces.Audit)
	assert.NotNil(t, stored.Surfaces.Recipient)
	assert.Contains(t, h.bus.types(), event.SurfaceFailed)
}

func TestCoordinator_DeliveryFailureKeepsRef(t *testing.T) {
	h := newHarness(t)
	h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})
	h.messenger.failUpdate = fmt.Errorf("%w: rate limited", domain.ErrDeliveryFailure)

	done, err := h.coordinator.Act(context.Background(), res.ID, domain.EventPickedUp, recipient())
	require.NoError(t, err)
	assert.Equal(t, res.Surfaces.Issuer, done.Surfaces.Issuer)
	assert.Equal(t, res.Surfaces.Recipient, done.Surfaces.Recipient)
}

func TestCoordinator_RejectionLeavesPanelsUntouched(t *testing.T) {
	h := newHarness(t)
	h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)

	res := h.reserve(t, map[domain.Slot]Choice{domain.SlotHead: {Name: "Guardian Helmet", Tier: "T7"}})
	before, ok := h.messenger.message(res.Surfaces.Issuer)
	require.True(t, ok)
	snapshot := before.Panel

	_, err := h.coordinator.Act(context.Background(), res.ID, domain.EventComplete, recipient())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	after, ok := h.messenger.message(res.Surfaces.Issuer)
	require.True(t, ok)
	assert.Equal(t, snapshot, after.Panel)
}

func TestRejectionReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptySelection), ReasonValidation},
		{domain.ErrPermissionDenied, ReasonPermissionDenied},
		{fmt.Errorf("%w: x", domain.ErrReservationNotFound), ReasonNotFound},
		{domain.ErrInvalidTransition, ReasonInvalidTransition},
		{domain.ErrInsufficientStock, ReasonInsufficientStock},
		{errors.New("boom"), ReasonError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RejectionReason(tt.err), tt.err.Error())
	}
}
