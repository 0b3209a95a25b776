package regear

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

func wizardStock(h *harness) {
	h.seed("Guardian Helmet", domain.SlotHead, "T7", 3)
	h.seed("Soldier Armor", domain.SlotChest, "T7", 1)
	h.seed("Claymore", domain.SlotMainHand, "T7", 2)
	h.seed("Cowl", domain.SlotHead, "T6", 4)
	h.seed("Empty Shoes", domain.SlotShoes, "T7", 0)
}

func step(t *testing.T, h *harness, p panel.Panel, customID string, values ...string) panel.Panel {
	t.Helper()
	action, err := ParseAction(customID, values)
	require.NoError(t, err)
	res, err := h.wizard.Apply(context.Background(), testGuild, p, action)
	require.NoError(t, err)
	return res.Panel
}

func TestWizard_StartRequiresStock(t *testing.T) {
	h := newHarness(t)

	_, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	assert.ErrorIs(t, err, domain.ErrInventoryEmpty)
}

func TestWizard_StartRendersTierPage(t *testing.T) {
	h := newHarness(t)
	wizardStock(h)

	p, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	require.NoError(t, err)

	assert.Equal(t, "Regear Request - Step 1/3", p.Title)
	tier, ok := p.Control(CustomIDTier)
	require.True(t, ok)
	require.Len(t, tier.Options, 2)
	assert.Equal(t, "T6", tier.Options[0].Value)
	assert.Equal(t, "T7", tier.Options[1].Value)
	_, ok = p.Control(CustomIDNext)
	assert.True(t, ok)
	_, ok = p.Control(CustomIDConfirm)
	assert.False(t, ok)
}

func TestWizard_FullFlow(t *testing.T) {
	h := newHarness(t)
	wizardStock(h)

	p, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	require.NoError(t, err)

	p = step(t, h, p, CustomIDTier, "T7")
	p = step(t, h, p, CustomIDNext)
	assert.Equal(t, "Regear Request - Step 2/3", p.Title)

	head, ok := p.Control(CustomIDSlotPrefix + string(domain.SlotHead))
	require.True(t, ok)
	assert.False(t, head.Disabled)
	require.Len(t, head.Options, 2)
	assert.Equal(t, NoneValue, head.Options[0].Value)
	assert.Equal(t, "Guardian Helmet", head.Options[1].Value)

	shoes, ok := p.Control(CustomIDSlotPrefix + string(domain.SlotShoes))
	require.True(t, ok)
	assert.True(t, shoes.Disabled, "a slot with no stock at the tier is disabled")

	p = step(t, h, p, CustomIDSlotPrefix+string(domain.SlotHead), "Guardian Helmet")
	p = step(t, h, p, CustomIDNext)
	p = step(t, h, p, CustomIDSlotPrefix+string(domain.SlotMainHand), "Claymore")
	assert.Equal(t, "Regear Request - Step 3/3", p.Title)

	action, err := ParseAction(CustomIDConfirm, nil)
	require.NoError(t, err)
	res, err := h.wizard.Apply(context.Background(), testGuild, p, action)
	require.NoError(t, err)
	require.NotNil(t, res.Confirmed)
	assert.Equal(t, TitleSubmitted, res.Panel.Title)
	assert.Equal(t, testRecipient, res.Confirmed.RecipientID)
	assert.Equal(t, "T7", res.Confirmed.Tier)
	assert.Equal(t, map[domain.Slot]Choice{
		domain.SlotHead:     {Name: "Guardian Helmet", Tier: "T7"},
		domain.SlotMainHand: {Name: "Claymore", Tier: "T7"},
	}, res.Confirmed.Items)
}

func TestWizard_RejectedActionsLeaveStateUnchanged(t *testing.T) {
	h := newHarness(t)
	wizardStock(h)

	page1, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	require.NoError(t, err)
	withTier := step(t, h, page1, CustomIDTier, "T7")
	page2 := step(t, h, withTier, CustomIDNext)
	page3 := step(t, h, page2, CustomIDNext)

	tests := []struct {
		name     string
		panel    panel.Panel
		customID string
		values   []string
		wantErr  error
	}{
		{"next without tier", page1, CustomIDNext, nil, domain.ErrValidation},
		{"tier after page 1", page2, CustomIDTier, []string{"T6"}, domain.ErrValidation},
		{"tier without stock", page1, CustomIDTier, []string{"T9"}, domain.ErrValidation},
		{"slot not on page", page2, CustomIDSlotPrefix + string(domain.SlotMainHand), []string{"Claymore"}, domain.ErrValidation},
		{"item from another tier", page2, CustomIDSlotPrefix + string(domain.SlotHead), []string{"Cowl"}, domain.ErrValidation},
		{"item out of stock", page2, CustomIDSlotPrefix + string(domain.SlotShoes), []string{"Empty Shoes"}, domain.ErrValidation},
		{"missing value", page2, CustomIDSlotPrefix + string(domain.SlotHead), nil, domain.ErrValidation},
		{"confirm before last page", page2, CustomIDConfirm, nil, domain.ErrValidation},
		{"confirm with nothing selected", page3, CustomIDConfirm, nil, domain.ErrEmptySelection},
		{"back from first page", page1, CustomIDBack, nil, domain.ErrValidation},
		{"next from last page", page3, CustomIDNext, nil, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := ParseAction(tt.customID, tt.values)
			require.NoError(t, err)

			before := Decode(tt.panel)
			_, err = h.wizard.Apply(context.Background(), testGuild, tt.panel, action)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, Decode(tt.panel))
		})
	}
	assert.Zero(t, h.store.ReservationCount())
}

func TestWizard_NoneClearsSlot(t *testing.T) {
	h := newHarness(t)
	wizardStock(h)

	p, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	require.NoError(t, err)
	p = step(t, h, p, CustomIDTier, "T7")
	p = step(t, h, p, CustomIDNext)
	p = step(t, h, p, CustomIDSlotPrefix+string(domain.SlotHead), "Guardian Helmet")
	require.Equal(t, 1, Decode(p).Count())

	p = step(t, h, p, CustomIDSlotPrefix+string(domain.SlotHead), NoneValue)
	assert.Equal(t, 0, Decode(p).Count())
}

func TestWizard_BackPreservesChoices(t *testing.T) {
	h := newHarness(t)
	wizardStock(h)

	p, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	require.NoError(t, err)
	p = step(t, h, p, CustomIDTier, "T7")
	p = step(t, h, p, CustomIDNext)
	p = step(t, h, p, CustomIDSlotPrefix+string(domain.SlotHead), "Guardian Helmet")
	p = step(t, h, p, CustomIDBack)

	sel := Decode(p)
	assert.Equal(t, 1, sel.Page)
	assert.Equal(t, "T7", sel.Tier)
	assert.Contains(t, sel.Items, domain.SlotHead)

	same := step(t, h, p, CustomIDTier, "T7")
	assert.Contains(t, Decode(same).Items, domain.SlotHead)

	changed := step(t, h, p, CustomIDTier, "T6")
	assert.Empty(t, Decode(changed).Items, "choices at the old tier are dropped")
}

func TestWizard_CancelDismisses(t *testing.T) {
	h := newHarness(t)
	wizardStock(h)

	p, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	require.NoError(t, err)

	action, err := ParseAction(CustomIDCancel, nil)
	require.NoError(t, err)
	res, err := h.wizard.Apply(context.Background(), testGuild, p, action)
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Nil(t, res.Confirmed)
	assert.Equal(t, TitleWizardCanceled, res.Panel.Title)
	assert.Empty(t, res.Panel.Rows)
}

func TestWizard_StockErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.store.Err = errors.New("db down")

	_, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	assert.ErrorContains(t, err, "db down")
}

func TestWizard_TruncatesLargeOptionLists(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 31; i++ {
		h.seed(fmt.Sprintf("Helmet %02d", i), domain.SlotHead, "T7", 1)
	}

	p, err := h.wizard.Start(context.Background(), testGuild, testRecipient)
	require.NoError(t, err)
	p = step(t, h, p, CustomIDTier, "T7")
	p = step(t, h, p, CustomIDNext)

	head, ok := p.Control(CustomIDSlotPrefix + string(domain.SlotHead))
	require.True(t, ok)
	assert.Len(t, head.Options, panel.MaxSelectOptions)
	assert.Contains(t, head.Placeholder, "showing 24 of 31")
	require.NoError(t, p.Validate())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(CustomIDSlotPrefix+"main-hand", []string{"Claymore"})
	require.NoError(t, err)
	assert.Equal(t, ActionSelectSlot, a.Kind)
	assert.Equal(t, domain.SlotMainHand, a.Slot)

	_, err = ParseAction(CustomIDSlotPrefix+"tail", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseAction(WizardPrefix+"unknown", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.True(t, IsWizardControl(CustomIDNext))
	assert.False(t, IsWizardControl("regear:complete:abc"))
}
