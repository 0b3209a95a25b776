package regear

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
	"github.com/osse101/PhoenixBot_Go/internal/repository"
)

// ActionKind identifies a wizard control
type ActionKind int

const (
	ActionSelectTier ActionKind = iota + 1
	ActionSelectSlot
	ActionNext
	ActionBack
	ActionConfirm
	ActionCancel
)

// Action is one activation of a wizard control
type Action struct {
	Kind   ActionKind
	Slot   domain.Slot
	Values []string
}

// IsWizardControl reports whether customID belongs to the wizard
func IsWizardControl(customID string) bool {
	return strings.HasPrefix(customID, WizardPrefix)
}

// ParseAction maps a control's custom id and submitted values to an Action
func ParseAction(customID string, values []string) (Action, error) {
	switch customID {
	case CustomIDTier:
		return Action{Kind: ActionSelectTier, Values: values}, nil
	case CustomIDNext:
		return Action{Kind: ActionNext}, nil
	case CustomIDBack:
		return Action{Kind: ActionBack}, nil
	case CustomIDConfirm:
		return Action{Kind: ActionConfirm}, nil
	case CustomIDCancel:
		return Action{Kind: ActionCancel}, nil
	}

	if raw, ok := strings.CutPrefix(customID, CustomIDSlotPrefix); ok {
		slot, err := domain.ParseSlot(raw)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return Action{Kind: ActionSelectSlot, Slot: slot, Values: values}, nil
	}

	return Action{}, fmt.Errorf("%w: "+ErrMsgUnknownControl, domain.ErrValidation, customID)
}

// Result is the outcome of applying an action
type Result struct {
	Panel panel.Panel

	// Confirmed is set when the user confirmed a non-empty selection
	Confirmed *Selection

	// Cancelled is set when the user dismissed the wizard
	Cancelled bool
}

// Wizard renders and advances the three page selection flow. It keeps no
// state between calls.
type Wizard struct {
	inventory repository.Inventory
}

// NewWizard creates a wizard reading stock from inventory
func NewWizard(inventory repository.Inventory) *Wizard {
	return &Wizard{inventory: inventory}
}

// Start renders page 1 for recipientID. Returns domain.ErrInventoryEmpty when
// the guild has nothing in stock.
func (w *Wizard) Start(ctx context.Context, guildID, recipientID string) (panel.Panel, error) {
	stock, err := w.stock(ctx, guildID)
	if err != nil {
		return panel.Panel{}, err
	}
	if len(stock) == 0 {
		return panel.Panel{}, fmt.Errorf("%w: guild %s", domain.ErrInventoryEmpty, guildID)
	}
	return render(NewSelection(recipientID), stock)
}

// Apply parses the selection out of current, applies action and re-renders.
// Rejected actions return an error wrapping domain.ErrValidation; the caller
// keeps the current panel.
func (w *Wizard) Apply(ctx context.Context, guildID string, current panel.Panel, action Action) (Result, error) {
	sel := Decode(current)

	if action.Kind == ActionCancel {
		return Result{Panel: CancelledWizardPanel(sel), Cancelled: true}, nil
	}

	stock, err := w.stock(ctx, guildID)
	if err != nil {
		return Result{}, err
	}

	next, err := apply(sel, action, stock)
	if err != nil {
		return Result{}, err
	}

	if action.Kind == ActionConfirm {
		return Result{Panel: SubmittedPanel(next), Confirmed: &next}, nil
	}

	p, err := render(next, stock)
	if err != nil {
		return Result{}, err
	}
	return Result{Panel: p}, nil
}

func (w *Wizard) stock(ctx context.Context, guildID string) ([]domain.InventoryItem, error) {
	items, err := w.inventory.QueryInventory(ctx, domain.InventoryFilter{GuildID: guildID, InStockOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	domain.SortInventoryItems(items)
	return items, nil
}

// apply is the pure state transition of the wizard
func apply(current Selection, action Action, stock []domain.InventoryItem) (Selection, error) {
	sel := current.Clone()

	switch action.Kind {
	case ActionSelectTier:
		if sel.Page != 1 {
			return current, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgTierOnlyOnFirstPage)
		}
		value, err := firstValue(action.Values)
		if err != nil {
			return current, err
		}
		tier := domain.ParseTierEquivalent(value)
		if !containsString(domain.DistinctTiers(stock), tier) {
			return current, fmt.Errorf("%w: "+ErrMsgTierNoStock, domain.ErrValidation, tier)
		}
		if tier != sel.Tier {
			for slot, c := range sel.Items {
				if c.Tier != tier {
					delete(sel.Items, slot)
				}
			}
		}
		sel.Tier = tier

	case ActionSelectSlot:
		if !containsSlot(SlotsOnPage(sel.Page), action.Slot) {
			return current, fmt.Errorf("%w: "+ErrMsgSlotNotOnPage, domain.ErrValidation, action.Slot, sel.Page)
		}
		if sel.Tier == "" {
			return current, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgTierRequired)
		}
		value, err := firstValue(action.Values)
		if err != nil {
			return current, err
		}
		if value == NoneValue {
			delete(sel.Items, action.Slot)
			break
		}
		if !inStock(stock, action.Slot, sel.Tier, value) {
			return current, fmt.Errorf("%w: "+ErrMsgMalformedChoice, domain.ErrValidation, action.Slot, value, sel.Tier)
		}
		sel.Items[action.Slot] = Choice{Name: value, Tier: sel.Tier}

	case ActionNext:
		if sel.Page >= TotalPages {
			return current, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgNoNextPage)
		}
		if sel.Page == 1 && sel.Tier == "" {
			return current, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgTierRequired)
		}
		sel.Page++

	case ActionBack:
		if sel.Page <= 1 {
			return current, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgNoPreviousPage)
		}
		sel.Page--

	case ActionConfirm:
		if sel.Page != TotalPages {
			return current, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgConfirmOnlyLastPage)
		}
		if sel.Count() == 0 {
			return current, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptySelection)
		}
		if sel.RecipientID == "" {
			return current, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgRecipientMissing)
		}

	default:
		return current, fmt.Errorf("%w: unknown action", domain.ErrValidation)
	}

	return sel, nil
}

// render builds the panel for sel from the current stock
func render(sel Selection, stock []domain.InventoryItem) (panel.Panel, error) {
	p := panel.Panel{Color: panel.ColorInfo}
	sel.Encode(&p)

	switch sel.Page {
	case 1:
		p.Footer = HintPage1
		p.Rows = append(p.Rows, panel.SelectRow(tierSelect(stock, sel.Tier)))
		p.Rows = append(p.Rows, panel.ButtonRow(
			panel.Control{CustomID: CustomIDNext, Label: "Next", Style: panel.StylePrimary},
			panel.Control{CustomID: CustomIDCancel, Label: "Cancel", Style: panel.StyleDanger},
		))
	case 2:
		p.Footer = HintPage2
		for _, slot := range SlotsOnPage(2) {
			p.Rows = append(p.Rows, panel.SelectRow(slotSelect(stock, sel, slot)))
		}
		p.Rows = append(p.Rows, panel.ButtonRow(
			panel.Control{CustomID: CustomIDBack, Label: "Back", Style: panel.StyleSecondary},
			panel.Control{CustomID: CustomIDNext, Label: "Next", Style: panel.StylePrimary},
			panel.Control{CustomID: CustomIDCancel, Label: "Cancel", Style: panel.StyleDanger},
		))
	default:
		p.Footer = HintPage3
		for _, slot := range SlotsOnPage(3) {
			p.Rows = append(p.Rows, panel.SelectRow(slotSelect(stock, sel, slot)))
		}
		p.Rows = append(p.Rows, panel.ButtonRow(
			panel.Control{CustomID: CustomIDBack, Label: "Back", Style: panel.StyleSecondary},
			panel.Control{CustomID: CustomIDConfirm, Label: "Confirm", Style: panel.StyleSuccess},
			panel.Control{CustomID: CustomIDCancel, Label: "Cancel", Style: panel.StyleDanger},
		))
	}

	if err := p.Validate(); err != nil {
		return panel.Panel{}, fmt.Errorf("rendered wizard exceeds limits: %w", err)
	}
	return p, nil
}

func tierSelect(stock []domain.InventoryItem, current string) panel.Control {
	tiers := domain.DistinctTiers(stock)
	if len(tiers) == 0 {
		return placeholderSelect(CustomIDTier, TextNoStock)
	}

	opts := make([]panel.Option, 0, len(tiers))
	for _, tier := range tiers {
		opts = append(opts, panel.Option{Label: tier, Value: tier, Default: tier == current})
	}
	opts, dropped := panel.LimitOptions(opts, panel.MaxSelectOptions)

	return panel.Control{
		CustomID:    CustomIDTier,
		Placeholder: overflowPlaceholder("Choose a tier", len(opts), len(opts)+dropped),
		Options:     opts,
		MinValues:   1,
		MaxValues:   1,
	}
}

func slotSelect(stock []domain.InventoryItem, sel Selection, slot domain.Slot) panel.Control {
	customID := CustomIDSlotPrefix + string(slot)
	chosen, hasChoice := sel.Items[slot]

	var opts []panel.Option
	for _, item := range stock {
		if item.Slot != slot || item.TierEquivalent != sel.Tier {
			continue
		}
		opts = append(opts, panel.Option{
			Label:       panel.Truncate(item.Name, panel.MaxLabelLength),
			Value:       item.Name,
			Description: fmt.Sprintf("%d in stock", item.Quantity),
			Default:     hasChoice && chosen.Name == item.Name,
		})
	}
	if len(opts) == 0 {
		return placeholderSelect(customID, fmt.Sprintf("No %s stock at %s", SlotLabel(slot), sel.Tier))
	}

	sort.SliceStable(opts, func(i, j int) bool {
		return strings.ToLower(opts[i].Label) < strings.ToLower(opts[j].Label)
	})
	total := len(opts)
	opts, _ = panel.LimitOptions(opts, MaxItemOptions)
	opts = append([]panel.Option{{Label: "None", Value: NoneValue, Description: "Leave this slot empty", Default: !hasChoice}}, opts...)

	return panel.Control{
		CustomID:    customID,
		Placeholder: overflowPlaceholder("Choose "+SlotLabel(slot), len(opts)-1, total),
		Options:     opts,
		MinValues:   1,
		MaxValues:   1,
	}
}

// placeholderSelect is a disabled select with a single inert option
func placeholderSelect(customID, text string) panel.Control {
	return panel.Control{
		CustomID:    customID,
		Placeholder: panel.Truncate(text, panel.MaxPlaceholder),
		Disabled:    true,
		Options:     []panel.Option{{Label: panel.Truncate(text, panel.MaxLabelLength), Value: NoneValue}},
		MinValues:   1,
		MaxValues:   1,
	}
}

func overflowPlaceholder(base string, shown, total int) string {
	if shown < total {
		base = fmt.Sprintf("%s (showing %d of %d)", base, shown, total)
	}
	return panel.Truncate(base, panel.MaxPlaceholder)
}

func firstValue(values []string) (string, error) {
	if len(values) == 0 || values[0] == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgMissingValue)
	}
	return values[0], nil
}

func inStock(stock []domain.InventoryItem, slot domain.Slot, tier, name string) bool {
	for _, item := range stock {
		if item.Slot == slot && item.TierEquivalent == tier && item.Name == name && item.Quantity > 0 {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsSlot(list []domain.Slot, s domain.Slot) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
