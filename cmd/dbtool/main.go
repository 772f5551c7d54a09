package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

// dbtool initializes a database schema and loads a catalog seed into it.
// It targets postgres via DATABASE_URL, or a sqlite file with -sqlite.
func main() {
	sqlitePath := flag.String("sqlite", "", "seed this sqlite file instead of DATABASE_URL")
	flag.Parse()

	config.LoadDotEnv()

	logger, err := obs.NewLogger(obs.LogConfig{Level: config.Get("LOG_LEVEL", "info"), Format: "console"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	conn, err := open(*sqlitePath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/lille.json")
	if err := initAndSeed(context.Background(), conn, seedPath); err != nil {
		logger.Fatal("dbtool failed", zap.Error(err))
	}
}

func open(sqlitePath string) (*sql.DB, error) {
	if sqlitePath != "" {
		return db.OpenSQLite(sqlitePath)
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.Open(databaseURL)
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	zap.L().Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	zap.L().Info("schema ready")

	zap.L().Info("seeding database", zap.String("seed", seedPath))
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	zap.L().Info("seeding complete")

	return nil
}
