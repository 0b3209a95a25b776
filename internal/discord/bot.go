package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/guild"
	"github.com/osse101/PhoenixBot_Go/internal/inventory"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
)

// Services are the application services commands and components call into
type Services struct {
	Wizard      *regear.Wizard
	Coordinator *regear.Coordinator
	Authorizer  *regear.Authorizer
	Inventory   *inventory.Service
	Guild       *guild.Service
	Submissions *SubmissionGuard
}

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	GuildID  string
	Registry *CommandRegistry
	Services *Services
}

// Config holds the bot configuration
type Config struct {
	Token string
	AppID string

	// GuildID scopes command registration to one guild when set
	GuildID string
}

// NewSession creates the discordgo session the bot and its Messenger share
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

// New creates a new Discord bot on session
func New(cfg Config, session *discordgo.Session, svc *Services) *Bot {
	return &Bot{
		Session:  session,
		AppID:    cfg.AppID,
		GuildID:  cfg.GuildID,
		Registry: NewCommandRegistry(),
		Services: svc,
	}
}

// RegisterDefaultCommands fills the registry with DefaultCommands
func (b *Bot) RegisterDefaultCommands() {
	for _, factory := range DefaultCommands() {
		cmd, handler := factory()
		b.Registry.Register(cmd, handler)
	}
	b.Registry.RegisterAutocomplete(CommandInventory, InventoryAutocomplete)
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running")
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() {
	if err := b.Session.Close(); err != nil {
		slog.Error("Failed to close Discord session", "error", err)
	}
}

// Run starts the bot and blocks until ctx is done
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	<-ctx.Done()
	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := interactionContext(i)

	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		b.Registry.Handle(ctx, s, i, b.Services)
	case discordgo.InteractionMessageComponent:
		HandleComponent(ctx, s, i, b.Services)
	}
}
