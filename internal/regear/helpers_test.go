package regear

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
	"github.com/osse101/PhoenixBot_Go/internal/testing/fakes"
)

const (
	testGuild     = "guild-1"
	testChannel   = "chan-regear"
	testAudit     = "chan-audit"
	testIssuer    = "user-issuer"
	testRecipient = "user-recipient"
	testOfficer   = "user-officer"
	testRole      = "role-officer"
)

type postedMessage struct {
	Ref        domain.SurfaceRef
	Panel      panel.Panel
	Attachment *panel.Attachment
	Kind       string
}

// fakeMessenger records every delivered panel
type fakeMessenger struct {
	mu       sync.Mutex
	next     int
	messages map[domain.SurfaceRef]*postedMessage
	deleted  []domain.SurfaceRef

	dmBlocked  bool
	failCreate error
	failUpdate error
	failDelete error
	failAudit  error

	// when set, NotifyUser signals notifyStarted and waits on notifyGate
	notifyStarted chan struct{}
	notifyGate    chan struct{}
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{messages: make(map[domain.SurfaceRef]*postedMessage)}
}

func (m *fakeMessenger) post(channelID, kind string, p panel.Panel, att *panel.Attachment) *domain.SurfaceRef {
	m.next++
	ref := domain.SurfaceRef{ChannelID: channelID, MessageID: fmt.Sprintf("msg-%d", m.next)}
	m.messages[ref] = &postedMessage{Ref: ref, Panel: p, Attachment: att, Kind: kind}
	return &ref
}

func (m *fakeMessenger) CreatePanel(_ context.Context, channelID string, p panel.Panel) (*domain.SurfaceRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	return m.post(channelID, "panel", p, nil), nil
}

func (m *fakeMessenger) UpdatePanel(_ context.Context, ref domain.SurfaceRef, p panel.Panel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return m.failUpdate
	}
	msg, ok := m.messages[ref]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSurfaceGone, ref.MessageID)
	}
	msg.Panel = p
	return nil
}

func (m *fakeMessenger) DeletePanel(_ context.Context, ref domain.SurfaceRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return m.failDelete
	}
	if _, ok := m.messages[ref]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSurfaceGone, ref.MessageID)
	}
	delete(m.messages, ref)
	m.deleted = append(m.deleted, ref)
	return nil
}

func (m *fakeMessenger) NotifyUser(_ context.Context, userID, fallbackChannelID string, p panel.Panel) (*domain.SurfaceRef, error) {
	if m.notifyGate != nil {
		close(m.notifyStarted)
		<-m.notifyGate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dmBlocked {
		return m.post("dm-"+userID, "dm", p, nil), nil
	}
	if fallbackChannelID == "" {
		return nil, fmt.Errorf("%w: direct messages closed", domain.ErrDeliveryFailure)
	}
	return m.post(fallbackChannelID, "mention", p, nil), nil
}

func (m *fakeMessenger) SendAuditEntry(_ context.Context, channelID string, p panel.Panel, att *panel.Attachment) (*domain.SurfaceRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAudit != nil {
		return nil, m.failAudit
	}
	return m.post(channelID, "audit", p, att), nil
}

func (m *fakeMessenger) message(ref *domain.SurfaceRef) (*postedMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ref == nil {
		return nil, false
	}
	msg, ok := m.messages[*ref]
	return msg, ok
}

func (m *fakeMessenger) inChannel(channelID string) []*postedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*postedMessage
	for ref, msg := range m.messages {
		if ref.ChannelID == channelID {
			out = append(out, msg)
		}
	}
	return out
}

// staticAudit is an AuditChannelSource with a fixed answer
type staticAudit struct {
	channelID string
	err       error
}

func (a staticAudit) AuditChannel(context.Context, string) (string, error) {
	return a.channelID, a.err
}

// recordingBus captures published events
type recordingBus struct {
	*event.MemoryBus
	mu     sync.Mutex
	events []event.Event
}

func newRecordingBus() *recordingBus {
	b := &recordingBus{MemoryBus: event.NewMemoryBus()}
	return b
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.mu.Lock()
	b.events = append(b.events, evt)
	b.mu.Unlock()
	return b.MemoryBus.Publish(ctx, evt)
}

func (b *recordingBus) types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

type harness struct {
	store       *fakes.Store
	messenger   *fakeMessenger
	bus         *recordingBus
	ledger      *Ledger
	coordinator *Coordinator
	wizard      *Wizard
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := fakes.NewStore()
	messenger := newFakeMessenger()
	bus := newRecordingBus()

	ledger := NewLedger(store, NewAuthorizer(store))
	ledger.now = func() time.Time { return time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC) }

	return &harness{
		store:       store,
		messenger:   messenger,
		bus:         bus,
		ledger:      ledger,
		coordinator: NewCoordinator(ledger, bus, DefaultViews(messenger, staticAudit{channelID: testAudit})...),
		wizard:      NewWizard(store),
	}
}

func (h *harness) seed(name string, slot domain.Slot, tier string, qty int) domain.ItemKey {
	h.store.Seed(testGuild, name, slot, tier, qty)
	return domain.ItemKey{GuildID: testGuild, Name: name, Slot: slot, TierEquivalent: tier}
}

func (h *harness) reserve(t *testing.T, items map[domain.Slot]Choice) *domain.Reservation {
	t.Helper()
	sel := NewSelection(testRecipient)
	sel.Page = TotalPages
	sel.Tier = "T7"
	for slot, c := range items {
		sel.Items[slot] = c
	}
	res, err := h.coordinator.Reserve(context.Background(), ReserveRequest{
		GuildID:   testGuild,
		ChannelID: testChannel,
		IssuerID:  testIssuer,
		Selection: sel,
	})
	require.NoError(t, err)
	return res
}

func issuer() Actor    { return Actor{UserID: testIssuer} }
func recipient() Actor { return Actor{UserID: testRecipient} }
