// Package app wires configuration to concrete storage backends. It is shared
// by the HTTP server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"log"

	"placement-panic/internal/config"
	"placement-panic/internal/database"
	"placement-panic/internal/repository"
)

// Storage is an opened backend. Close releases its connections.
type Storage struct {
	Repos *repository.Repositories
	Close func()
}

// OpenStorage connects the backend selected by cfg.StorageType and applies the
// schema.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var st *Storage

	switch cfg.StorageType {
	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("PostgreSQL connection failed: %w", err)
		}
		if err := database.RunMigrations(pool, cfg.MigrationsPath); err != nil {
			pool.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		st = &Storage{
			Repos: &repository.Repositories{
				Users:      repository.NewPostgresUserRepo(pool),
				Questions:  repository.NewPostgresQuestionRepo(pool),
				Interviews: repository.NewPostgresInterviewRepo(pool),
			},
			Close: pool.Close,
		}

	case config.StorageSQLite:
		db, err := database.NewSQLiteDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("SQLite open failed: %w", err)
		}
		st = &Storage{
			Repos: repository.SQLiteRepositories(db),
			Close: func() { db.Close() },
		}

	case config.StorageMemory:
		log.Println("⚠ Using in-memory storage; data is lost on restart")
		st = &Storage{
			Repos: repository.NewMemoryStore().Repositories(),
			Close: func() {},
		}

	default:
		return nil, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}

	return st, nil
}
