package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/gauss2302/agrogame/internal/bootstrap"
	"github.com/gauss2302/agrogame/internal/config"
	"github.com/gauss2302/agrogame/internal/database"
	"github.com/gauss2302/agrogame/internal/database/postgres"
)

func main() {
	reset := flag.Bool("reset", false, "drop the database before creating it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	ctx := context.Background()

	if err := ensureDatabase(ctx, cfg, *reset); err != nil {
		log.Fatal(err)
	}

	pool, err := database.NewPool(ctx, cfg.PoolConfig())
	if err != nil {
		log.Fatalf("Unable to connect to %s: %v", cfg.DBName, err)
	}
	defer pool.Close()

	version, err := database.Migrate(ctx, pool)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if _, err := bootstrap.SyncCropCatalog(ctx, cfg.CropCatalogPath, postgres.NewCatalogRepository(pool)); err != nil {
		log.Fatalf("Catalog sync failed: %v", err)
	}
	fmt.Printf("Database %s ready at schema version %d\n", cfg.DBName, version)
}

// ensureDatabase connects to the server's maintenance database and creates
// the configured one if needed
func ensureDatabase(ctx context.Context, cfg *config.Config, reset bool) error {
	serverConn := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, serverConn)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	name := pgx.Identifier{cfg.DBName}.Sanitize()

	if reset {
		fmt.Printf("Dropping database %s...\n", cfg.DBName)
		if _, err := conn.Exec(ctx,
			"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()",
			cfg.DBName); err != nil {
			log.Printf("Warning: failed to terminate connections: %v", err)
		}
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
	}

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
