package bootstrap

import (
	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/config"
	"github.com/osse101/PhoenixBot_Go/internal/discord"
	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/eventlog"
	"github.com/osse101/PhoenixBot_Go/internal/guild"
	"github.com/osse101/PhoenixBot_Go/internal/inventory"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
)

// Services holds the application services built on the repositories.
type Services struct {
	Discord  *discord.Services
	EventLog eventlog.Service
}

// InitializeServices wires the regear subsystem. Panels are delivered
// through session, which the bot shares.
func InitializeServices(cfg *config.Config, repos *Repositories, bus event.Bus, session *discordgo.Session) *Services {
	guildSvc := guild.NewService(repos.Guild, guild.CacheConfig{Size: cfg.Cache.Size, TTL: cfg.Cache.TTL})
	auth := regear.NewAuthorizer(guildSvc)
	ledger := regear.NewLedger(repos.Regear, auth)
	coordinator := regear.NewCoordinator(ledger, bus, regear.DefaultViews(discord.NewMessenger(session), guildSvc)...)

	return &Services{
		Discord: &discord.Services{
			Wizard:      regear.NewWizard(repos.Inventory),
			Coordinator: coordinator,
			Authorizer:  auth,
			Inventory:   inventory.NewService(repos.Inventory),
			Guild:       guildSvc,
			Submissions: discord.NewSubmissionGuard(discord.DefaultSubmissionGuardSize, discord.DefaultSubmissionGuardTTL),
		},
		EventLog: eventlog.NewService(repos.EventLog),
	}
}
