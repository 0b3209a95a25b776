package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Slot is one of the five tracked equipment categories
type Slot string

const (
	SlotHead     Slot = "head"
	SlotChest    Slot = "chest"
	SlotShoes    Slot = "shoes"
	SlotMainHand Slot = "main-hand"
	SlotOffHand  Slot = "off-hand"
)

// Slots lists every slot in display order
var Slots = []Slot{SlotHead, SlotChest, SlotShoes, SlotMainHand, SlotOffHand}

// Valid reports whether s is a tracked slot
func (s Slot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSlot converts user input into a Slot
func ParseSlot(raw string) (Slot, error) {
	s := Slot(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, raw)
	}
	return s, nil
}

// InventoryItem is a single stock record in a guild's shared gear inventory.
// Identity is the (GuildID, Name, Slot, TierEquivalent) tuple.
type InventoryItem struct {
	GuildID        string    `json:"guild_id"`
	Name           string    `json:"name"`
	Slot           Slot      `json:"slot"`
	TierEquivalent string    `json:"tier_equivalent"`
	Quantity       int       `json:"quantity"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Key returns the identity of the item
func (i InventoryItem) Key() ItemKey {
	return ItemKey{GuildID: i.GuildID, Name: i.Name, Slot: i.Slot, TierEquivalent: i.TierEquivalent}
}

// ItemKey identifies an inventory record
type ItemKey struct {
	GuildID        string
	Name           string
	Slot           Slot
	TierEquivalent string
}

// InventoryFilter narrows an inventory query. Empty fields match everything.
type InventoryFilter struct {
	GuildID     string
	Slot        Slot
	Tier        string
	NameFilter  string
	InStockOnly bool
}

// tier and enchant parts are capped at three digits so the canonical code fits
// the tier_equivalent column and never overflows int
var (
	tierEnchantPattern = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})$`)
	tierNumberPattern  = regexp.MustCompile(`^T?(\d{1,3})$`)
)

// ParseTierEquivalent canonicalizes free-form tier input.
// "4.3" and "T4.3" become "T7" (tier plus enchant), "7" and "t7" become "T7".
// Input that is not numeric is upper-cased and prefixed with T.
func ParseTierEquivalent(input string) string {
	cleaned := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(input)), "T")

	if m := tierEnchantPattern.FindStringSubmatch(cleaned); m != nil {
		tier, _ := strconv.Atoi(m[1])
		enchant, _ := strconv.Atoi(m[2])
		return "T" + strconv.Itoa(tier+enchant)
	}

	if m := tierNumberPattern.FindStringSubmatch(cleaned); m != nil {
		n, _ := strconv.Atoi(m[1])
		return "T" + strconv.Itoa(n)
	}

	return "T" + cleaned
}

// TierNumber extracts the numeric tier from a canonical code.
// ok is false for codes that do not parse; those sort last.
func TierNumber(tier string) (n int, ok bool) {
	m := tierNumberPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(tier)))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// CompareTiers orders tier codes ascending by number with unparseable codes last
func CompareTiers(a, b string) int {
	na, okA := TierNumber(a)
	nb, okB := TierNumber(b)
	switch {
	case okA && okB:
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SortTiers sorts tier codes in place
func SortTiers(tiers []string) {
	sort.SliceStable(tiers, func(i, j int) bool {
		return CompareTiers(tiers[i], tiers[j]) < 0
	})
}

// SortInventoryItems orders items by tier, then name
func SortInventoryItems(items []InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := CompareTiers(items[i].TierEquivalent, items[j].TierEquivalent); c != 0 {
			return c < 0
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// DistinctTiers returns the sorted set of tiers present in items
func DistinctTiers(items []InventoryItem) []string {
	seen := make(map[string]struct{}, len(items))
	tiers := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.TierEquivalent]; ok {
			continue
		}
		seen[item.TierEquivalent] = struct{}{}
		tiers = append(tiers, item.TierEquivalent)
	}
	SortTiers(tiers)
	return tiers
}
