package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/inventory"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
)

// maxListLines keeps a stock listing inside one embed description
const maxListLines = 40

func slotChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Slots))
	for _, slot := range domain.Slots {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  regear.SlotLabel(slot),
			Value: string(slot),
		})
	}
	return choices
}

// InventoryCommand returns the inventory command definition and handler
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minQuantity := float64(1)

	cmd := &discordgo.ApplicationCommand{
		Name:         CommandInventory,
		Description:  "Manage the guild gear inventory",
		DMPermission: new(bool),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandAdd,
				Description: "Add gear to the inventory",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        OptionSlot,
						Description: "Equipment slot",
						Required:    true,
						Choices:     slotChoices(),
					},
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         OptionName,
						Description:  "Item name",
						Required:     true,
						Autocomplete: true,
						MaxLength:    domain.MaxItemNameLength,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        OptionTier,
						Description: "Tier equivalent, e.g. 4.3 or T7",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        OptionQuantity,
						Description: "Quantity to add",
						Required:    true,
						MinValue:    &minQuantity,
						MaxValue:    domain.MaxInventoryAdd,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        OptionNotes,
						Description: "Optional notes",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandList,
				Description: "List gear in stock",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        OptionSlot,
						Description: "Only this slot",
						Required:    false,
						Choices:     slotChoices(),
					},
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         OptionTier,
						Description:  "Only this tier",
						Required:     false,
						Autocomplete: true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandStock,
				Description: "Show items running low",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         OptionTier,
						Description:  "Only this tier",
						Required:     false,
						Autocomplete: true,
					},
				},
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if i.GuildID == "" {
			respondEphemeral(ctx, s, i, MsgGuildOnly)
			return nil
		}

		name, opts := subcommand(i)
		switch name {
		case SubcommandAdd:
			return inventoryAdd(ctx, s, i, svc, optionMap(opts))
		case SubcommandList:
			return inventoryList(ctx, s, i, svc, optionMap(opts))
		case SubcommandStock:
			return inventoryLowStock(ctx, s, i, svc, optionMap(opts))
		}
		return nil
	}

	return cmd, handler
}

func inventoryAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	allowed, err := svc.Authorizer.Allowed(ctx, i.GuildID, actorFromInteraction(i), domain.PermissionInventory)
	if err == nil && !allowed {
		err = domain.ErrPermissionDenied
	}
	if err != nil {
		respondEphemeral(ctx, s, i, formatFriendlyError(err))
		return err
	}

	req := inventory.AddRequest{
		GuildID: i.GuildID,
		Slot:    stringOption(opts, OptionSlot),
		Name:    stringOption(opts, OptionName),
		Tier:    stringOption(opts, OptionTier),
		Notes:   stringOption(opts, OptionNotes),
	}
	if o, ok := opts[OptionQuantity]; ok {
		req.Quantity = int(o.IntValue())
	}

	if !deferResponse(ctx, s, i) {
		return nil
	}

	item, err := svc.Inventory.Add(ctx, req)
	if err != nil {
		respondError(ctx, s, i, err)
		return err
	}

	msg := fmt.Sprintf("Added **%d× %s** (%s, %s).\nNow in stock: **%d**",
		req.Quantity, item.Name, regear.SlotLabel(item.Slot), item.TierEquivalent, item.Quantity)
	sendEmbed(ctx, s, i, createEmbed(TitleInventoryAdded, msg, panel.ColorSuccess, ""))
	return nil
}

func inventoryList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	filter := domain.InventoryFilter{
		GuildID:     i.GuildID,
		Tier:        stringOption(opts, OptionTier),
		InStockOnly: true,
	}
	if raw := stringOption(opts, OptionSlot); raw != "" {
		slot, err := domain.ParseSlot(raw)
		if err != nil {
			respondEphemeral(ctx, s, i, formatFriendlyError(err))
			return err
		}
		filter.Slot = slot
	}

	if !deferResponse(ctx, s, i) {
		return nil
	}

	items, err := svc.Inventory.List(ctx, filter)
	if err != nil {
		respondError(ctx, s, i, err)
		return err
	}

	sendEmbed(ctx, s, i, createEmbed(TitleInventory, stockLines(items, TextInventoryEmpty), panel.ColorInfo, ""))
	return nil
}

func inventoryLowStock(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	if !deferResponse(ctx, s, i) {
		return nil
	}

	items, err := svc.Inventory.LowStock(ctx, i.GuildID, stringOption(opts, OptionTier))
	if err != nil {
		respondError(ctx, s, i, err)
		return err
	}

	empty := fmt.Sprintf(TextNoLowStock, domain.LowStockThreshold)
	sendEmbed(ctx, s, i, createEmbed(TitleLowStock, stockLines(items, empty), panel.ColorWarning, ""))
	return nil
}

// stockLines renders items one per line, sorted as given
func stockLines(items []domain.InventoryItem, empty string) string {
	if len(items) == 0 {
		return empty
	}

	shown := items
	if len(shown) > maxListLines {
		shown = shown[:maxListLines]
	}

	lines := make([]string, 0, len(shown)+1)
	for _, item := range shown {
		lines = append(lines, fmt.Sprintf("**%s** %s · %s ×%d",
			item.TierEquivalent, item.Name, regear.SlotLabel(item.Slot), item.Quantity))
	}
	if extra := len(items) - len(shown); extra > 0 {
		lines = append(lines, fmt.Sprintf(TextInventoryOverrun, extra))
	}
	return panel.Lines(lines, panel.MaxDescLength)
}

// InventoryAutocomplete suggests item names for add and known tiers for
// list and stock
func InventoryAutocomplete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
	sub, opts := subcommand(i)

	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, o := range opts {
		if o.Focused {
			focused = o
			break
		}
	}
	if focused == nil || i.GuildID == "" {
		return nil
	}

	filter := domain.InventoryFilter{GuildID: i.GuildID}
	if sub == SubcommandAdd {
		if slot, err := domain.ParseSlot(stringOption(optionMap(opts), OptionSlot)); err == nil {
			filter.Slot = slot
		}
	} else {
		filter.InStockOnly = true
	}

	items, err := svc.Inventory.List(ctx, filter)
	if err != nil {
		return err
	}

	var values []string
	if focused.Name == OptionName {
		values = distinctNames(items)
	} else {
		values = domain.DistinctTiers(items)
	}

	typed := strings.ToLower(optionString(focused))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, panel.MaxSelectOptions)
	for _, v := range values {
		if typed != "" && !strings.Contains(strings.ToLower(v), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: v, Value: v})
		if len(choices) == panel.MaxSelectOptions {
			break
		}
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}, discordgo.WithContext(ctx))
}

func distinctNames(items []domain.InventoryItem) []string {
	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		names = append(names, item.Name)
	}
	return names
}
