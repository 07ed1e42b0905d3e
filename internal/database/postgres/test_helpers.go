package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gauss2302/agrogame/internal/database"
	"github.com/gauss2302/agrogame/internal/domain"
)

var (
	testPool *pgxpool.Pool

	// nextFarmID hands every test its own farm so tests never share rows
	nextFarmID atomic.Int64
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = setupDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// setupDatabase starts a postgres container and applies the embedded migrations.
// It returns a nil pool when docker is unavailable so tests can skip.
func setupDatabase(ctx context.Context) (pool *pgxpool.Pool, terminate func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
			pool = nil
		}
	}()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, nil
	}
	terminate = func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return nil, terminate
	}

	pool, err = database.NewPool(ctx, database.PoolConfig{
		ConnString:      connStr,
		MaxConns:        25,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 10 * time.Minute,
	})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return nil, terminate
	}

	if _, err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return nil, terminate
	}
	return pool, terminate
}

// requirePool skips the test when no database is available
func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return testPool
}

// newTestFarm creates a fresh farm with the default grid and returns its id
func newTestFarm(t *testing.T, repo *FarmRepository, opts domain.FarmOptions) int64 {
	t.Helper()
	farmID := 1000 + nextFarmID.Add(1)
	created, err := repo.EnsureFarm(context.Background(), farmID, opts)
	if err != nil {
		t.Fatalf("failed to create farm %d: %v", farmID, err)
	}
	if !created {
		t.Fatalf("farm %d already existed", farmID)
	}
	return farmID
}

// setVirtualHarvests forces the farm counter for claim tests
func setVirtualHarvests(t *testing.T, farmID int64, total int) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`UPDATE farms SET virtual_harvest_total = $2 WHERE farm_id = $1`, farmID, total)
	if err != nil {
		t.Fatalf("failed to set virtual harvests: %v", err)
	}
}
