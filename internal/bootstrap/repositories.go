package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gauss2302/agrogame/internal/database/postgres"
	"github.com/gauss2302/agrogame/internal/eventlog"
	"github.com/gauss2302/agrogame/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Farm     repository.Farm
	Catalog  repository.Catalog
	EventLog eventlog.Repository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Farm:     postgres.NewFarmRepository(dbPool),
		Catalog:  postgres.NewCatalogRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
