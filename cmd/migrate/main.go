package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go-jobtracker-backend/pkg/database"
	"go-jobtracker-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	list := flag.Bool("list", false, "print embedded migrations and exit")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))

	if *list {
		names, err := database.MigrationNames()
		if err != nil {
			logger.Log.Error("Failed to read migrations", "error", err)
			os.Exit(1)
		}
		for _, n := range names {
			logger.Log.Info("Migration", "version", n)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := database.Migrate(ctx, dsn)
	if err != nil {
		logger.Log.Error("Migration failed", "error", err, "applied", applied)
		os.Exit(1)
	}
	logger.Log.Info("Migrations complete", "applied", len(applied))
}
