package regear_bench

import (
	"context"
	"testing"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
	"github.com/osse101/PhoenixBot_Go/internal/testing/fakes"
)

const (
	guildID     = "guild-1"
	issuerID    = "issuer-1"
	recipientID = "recipient-1"
)

// StubBus implements event.Bus
type StubBus struct{}

func (b *StubBus) Publish(ctx context.Context, e event.Event) error   { return nil }
func (b *StubBus) Subscribe(eventType event.Type, handler event.Handler) {}

func fullSelection(store *fakes.Store) regear.Selection {
	sel := regear.NewSelection(recipientID)
	sel.Page = regear.TotalPages
	sel.Tier = "T7"
	for page := 1; page <= regear.TotalPages; page++ {
		for _, slot := range regear.SlotsOnPage(page) {
			name := "Bench " + string(slot)
			store.Seed(guildID, name, slot, "T7", 1<<30)
			sel.Items[slot] = regear.Choice{Name: name, Tier: "T7"}
		}
	}
	return sel
}

// BenchmarkRegearLifecycle reserves, picks up and completes a full kit,
// exercising the conditional stock decrement on every slot.
func BenchmarkRegearLifecycle(b *testing.B) {
	store := fakes.NewStore()
	ledger := regear.NewLedger(store, regear.NewAuthorizer(store))
	coord := regear.NewCoordinator(ledger, &StubBus{})
	sel := fullSelection(store)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := coord.Reserve(ctx, regear.ReserveRequest{
			GuildID:   guildID,
			IssuerID:  issuerID,
			Selection: sel,
		})
		if err != nil {
			b.Fatalf("Reserve failed: %v", err)
		}
		if _, err := coord.Act(ctx, res.ID, domain.EventPickedUp, regear.Actor{UserID: recipientID}); err != nil {
			b.Fatalf("pickup failed: %v", err)
		}
		if _, err := coord.Act(ctx, res.ID, domain.EventComplete, regear.Actor{UserID: issuerID}); err != nil {
			b.Fatalf("complete failed: %v", err)
		}
	}
}

// BenchmarkSelectionRoundTrip measures the wizard state carried in a panel
func BenchmarkSelectionRoundTrip(b *testing.B) {
	sel := fullSelection(fakes.NewStore())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p panel.Panel
		sel.Encode(&p)
		if got := regear.Decode(p); got.Count() != sel.Count() {
			b.Fatalf("decoded %d items, want %d", got.Count(), sel.Count())
		}
	}
}
