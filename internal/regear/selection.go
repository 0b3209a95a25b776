package regear

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

// Choice is the item picked for one slot
type Choice struct {
	Name string
	Tier string
}

// Selection is the wizard state. It lives only inside the rendered panel.
type Selection struct {
	Page        int
	Tier        string
	RecipientID string
	Items       map[domain.Slot]Choice
}

// NewSelection starts a selection on page 1
func NewSelection(recipientID string) Selection {
	return Selection{Page: 1, RecipientID: recipientID, Items: map[domain.Slot]Choice{}}
}

// Clone returns a deep copy
func (s Selection) Clone() Selection {
	out := s
	out.Items = make(map[domain.Slot]Choice, len(s.Items))
	for k, v := range s.Items {
		out.Items[k] = v
	}
	return out
}

// Count returns how many slots have a choice
func (s Selection) Count() int {
	return len(s.Items)
}

// ReservationItems converts the choices to reservation items in slot order
func (s Selection) ReservationItems() []domain.ReservationItem {
	items := make([]domain.ReservationItem, 0, len(s.Items))
	for _, slot := range domain.Slots {
		c, ok := s.Items[slot]
		if !ok {
			continue
		}
		items = append(items, domain.ReservationItem{
			Slot:           slot,
			Name:           c.Name,
			TierEquivalent: c.Tier,
			Quantity:       domain.DefaultReservedQuantity,
		})
	}
	return items
}

// SlotsOnPage lists the slots chosen on a wizard page
func SlotsOnPage(page int) []domain.Slot {
	switch page {
	case 2:
		return []domain.Slot{domain.SlotHead, domain.SlotChest, domain.SlotShoes}
	case 3:
		return []domain.Slot{domain.SlotMainHand, domain.SlotOffHand}
	}
	return nil
}

var (
	slotLabels      = map[domain.Slot]string{}
	slotsByLabel    = map[string]domain.Slot{}
	stepPattern     = regexp.MustCompile(`Step (\d+)/\d+`)
	recipientLine   = regexp.MustCompile(`\*\*Recipient:\*\* <@!?([^>\s]+)>`)
	tierLine        = regexp.MustCompile(`\*\*Tier:\*\* (T\S*)`)
	selectedItemRow = regexp.MustCompile(`^\*\*([^*]+):\*\* (.+) \(([^()]+)\)$`)
)

func init() {
	caser := cases.Title(language.English)
	for _, slot := range domain.Slots {
		label := caser.String(string(slot))
		slotLabels[slot] = label
		slotsByLabel[label] = slot
	}
}

// SlotLabel returns the display name of a slot ("Main-Hand")
func SlotLabel(slot domain.Slot) string {
	if label, ok := slotLabels[slot]; ok {
		return label
	}
	return string(slot)
}

// Encode writes the selection into the panel's title, description and
// Selected Items field
func (s Selection) Encode(p *panel.Panel) {
	p.Title = fmt.Sprintf("%s - Step %d/%d", TitleWizard, s.Page, TotalPages)

	tier := s.Tier
	if tier == "" {
		tier = TextTierUnset
	}
	p.Description = fmt.Sprintf("**Recipient:** <@%s>\n**Tier:** %s", s.RecipientID, tier)

	p.Fields = []panel.Field{{Name: FieldSelectedItems, Value: s.summary()}}
}

func (s Selection) summary() string {
	lines := make([]string, 0, len(s.Items))
	for _, slot := range domain.Slots {
		if c, ok := s.Items[slot]; ok {
			lines = append(lines, fmt.Sprintf("**%s:** %s (%s)", SlotLabel(slot), c.Name, c.Tier))
		}
	}
	if len(lines) == 0 {
		return TextNothingSelected
	}
	return panel.Lines(lines, panel.MaxFieldValue)
}

// Decode reads a selection back from a rendered panel. Missing or
// unreadable parts are left unset.
func Decode(p panel.Panel) Selection {
	sel := NewSelection("")

	if m := stepPattern.FindStringSubmatch(p.Title); m != nil {
		if page, err := strconv.Atoi(m[1]); err == nil && page >= 1 && page <= TotalPages {
			sel.Page = page
		}
	}
	if m := recipientLine.FindStringSubmatch(p.Description); m != nil {
		sel.RecipientID = m[1]
	}
	if m := tierLine.FindStringSubmatch(p.Description); m != nil {
		sel.Tier = m[1]
	}

	if f, ok := p.Field(FieldSelectedItems); ok {
		for _, line := range strings.Split(f.Value, "\n") {
			m := selectedItemRow.FindStringSubmatch(strings.TrimSpace(line))
			if m == nil {
				continue
			}
			slot, ok := slotsByLabel[m[1]]
			if !ok {
				continue
			}
			sel.Items[slot] = Choice{Name: m[2], Tier: m[3]}
		}
	}
	return sel
}
