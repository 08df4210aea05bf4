package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository/postgres"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/service"
)

// Standalone tag indexing job. Runs a full rebuild immediately and then
// every interval, like the server's built-in loop, but deployable as a
// cron-style process of its own. Missing shop or session is fatal here.
func main() {
	once := pflag.Bool("once", false, "run a single index pass and exit")
	interval := pflag.Duration("interval", time.Minute, "time between index runs")
	pflag.Parse()

	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewProduction()
	if cfg.Environment != "production" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	run := func() error {
		start := time.Now()
		if err := service.RunTagIndexOnce(ctx, cfg, repos, logger); err != nil {
			return err
		}
		logger.Info("Index job done", zap.Duration("took", time.Since(start)))
		return nil
	}

	if *once {
		if err := run(); err != nil {
			logger.Fatal("Index job failed", zap.Error(err))
		}
		return
	}

	logger.Info("Tag indexing started", zap.Duration("interval", *interval))
	if err := run(); err != nil {
		logger.Fatal("Index job failed", zap.Error(err))
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := run(); err != nil {
			logger.Error("Index job failed", zap.Error(err))
		}
	}
}
