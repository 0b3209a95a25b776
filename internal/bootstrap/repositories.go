package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PhoenixBot_Go/internal/database/postgres"
	"github.com/osse101/PhoenixBot_Go/internal/eventlog"
	"github.com/osse101/PhoenixBot_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Regear    repository.Regear
	Inventory repository.Inventory
	Guild     repository.Guild
	EventLog  eventlog.Repository
}

// InitializeRepositories creates all repository implementations on one pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Regear:    postgres.NewRegearRepository(dbPool),
		Inventory: postgres.NewInventoryRepository(dbPool),
		Guild:     postgres.NewGuildRepository(dbPool),
		EventLog:  postgres.NewEventLogRepository(dbPool),
	}
}
