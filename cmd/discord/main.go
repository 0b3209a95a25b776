package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/bootstrap"
	"github.com/osse101/PhoenixBot_Go/internal/config"
	"github.com/osse101/PhoenixBot_Go/internal/database"
	"github.com/osse101/PhoenixBot_Go/internal/discord"
	"github.com/osse101/PhoenixBot_Go/internal/server"
)

// shutdownTimeout bounds graceful shutdown after a signal
const shutdownTimeout = 15 * time.Second

// @title PhoenixBot API
// @version 1.0
// @description Read-only guild API over regear reservations, their history and the regear stock.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("PhoenixBot exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return err
		}
	}

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	bus := bootstrap.InitializeEventSystem()
	services := bootstrap.InitializeServices(cfg, repos, bus, session)

	history, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: services.EventLog,
		EventLog:        cfg.EventLog,
	})
	if err != nil {
		dbPool.Close()
		return err
	}

	bot := discord.New(discord.Config{
		Token:   cfg.Discord.Token,
		AppID:   cfg.Discord.AppID,
		GuildID: cfg.Discord.GuildID,
	}, session, services.Discord)
	bot.RegisterDefaultCommands()

	if cfg.Discord.ForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.Discord.GuildID, cfg.Discord.ForceCommandUpdate); err != nil {
		// Commands registered on a previous start keep working
		slog.Error("Failed to register commands", "error", err)
	}

	feed := bootstrap.InitializeFeed(bus)
	workerPool, sched := bootstrap.StartBackgroundJobs(cfg.EventLog, services.EventLog)

	srv := server.NewServer(server.Options{
		Port:           cfg.HTTPPort,
		APIKey:         cfg.APIKey,
		Version:        cfg.Version,
		TrustedProxies: cfg.API.TrustedProxies,
		Limits: server.GuardLimits{
			RequestsPerWindow: cfg.API.RateLimit,
			FailedKeyAlert:    server.FailedAuthAlertCount,
			Window:            cfg.API.RateWindow,
			TrackedClients:    server.MaxTrackedClients,
		},
	}, server.Dependencies{
		DBPool:    dbPool,
		Regears:   services.Discord.Coordinator,
		Stock:     services.Discord.Inventory,
		History:   services.EventLog,
		Feed:      feed,
		BotHealth: bot.HandleHealth,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	botErr := bot.Run(ctx)
	if botErr != nil {
		slog.Error("Bot failed", "error", botErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Feed:       feed,
		Scheduler:  sched,
		WorkerPool: workerPool,
		History:    history,
		DBPool:     dbPool,
		LogFile:    logFile,
	})

	return botErr
}
