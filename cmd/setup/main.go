// Command setup creates the PhoenixBot database when missing and applies
// the embedded migrations. With -reset it drops the database first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/PhoenixBot_Go/internal/config"
	"github.com/osse101/PhoenixBot_Go/internal/database"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

const setupTimeout = 2 * time.Minute

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the database before migrating")
	flag.Parse()

	logger.InitLogger(logger.DevelopmentConfig())

	if err := run(*reset); err != nil {
		slog.Error("Database setup failed", "error", err)
		os.Exit(1)
	}
}

func run(reset bool) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := ensureDatabase(ctx, cfg, reset); err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.ConnString(cfg.Name), database.PoolOptions{MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	slog.Info("Database ready", "database", cfg.Name)
	return nil
}

// ensureDatabase connects to the server's maintenance database to create,
// or with reset recreate, cfg.Name
func ensureDatabase(ctx context.Context, cfg config.DatabaseConfig, reset bool) error {
	conn, err := pgx.Connect(ctx, cfg.ConnString("postgres"))
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	name := pgx.Identifier{cfg.Name}.Sanitize()

	if reset {
		slog.Info("Terminating existing connections", "database", cfg.Name)
		if _, err := conn.Exec(ctx, `
			SELECT pg_terminate_backend(pid)
			FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.Name); err != nil {
			slog.Warn("Failed to terminate connections", "error", err)
		}

		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
		slog.Info("Database dropped", "database", cfg.Name)
	}

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		slog.Info("Database already exists", "database", cfg.Name)
		return nil
	}

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	slog.Info("Database created", "database", cfg.Name)
	return nil
}
