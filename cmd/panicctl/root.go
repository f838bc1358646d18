package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"placement-panic/internal/app"
	"placement-panic/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "panicctl",
		Short:         "Placement Panic admin tool",
		Long:          "panicctl runs migrations, seeds the question bank and inspects interview data without going through the HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("storage", "", "Storage backend: postgres, sqlite or memory (overrides STORAGE_TYPE)")
	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH)")
	root.PersistentFlags().String("database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	root.PersistentFlags().String("migrations", "", "Migrations directory (overrides MIGRATIONS_PATH)")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newReportCmd())

	return root
}

// resolveConfig builds the storage config from flags, falling back to the
// environment when --storage is not given.
func resolveConfig(cmd *cobra.Command) *config.Config {
	storage, _ := cmd.Flags().GetString("storage")
	dbPath, _ := cmd.Flags().GetString("db")
	databaseURL, _ := cmd.Flags().GetString("database-url")
	migrations, _ := cmd.Flags().GetString("migrations")

	var cfg *config.Config
	if storage == "" {
		cfg = config.LoadStorage()
	} else {
		cfg = &config.Config{
			StorageType:    storage,
			DBPath:         "./placement-panic.db",
			MigrationsPath: "migrations",
		}
	}

	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if migrations != "" {
		cfg.MigrationsPath = migrations
	}
	return cfg
}

func openStorage(cmd *cobra.Command) (*app.Storage, error) {
	cfg := resolveConfig(cmd)
	if cfg.StorageType == config.StoragePostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("--database-url is required for postgres storage")
	}

	st, err := app.OpenStorage(commandContext(cmd), cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return st, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
