package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository/postgres"
)

// show-tags prints the stored tag index for the configured shop.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	idx, err := repos.TagIndex.GetByShop(context.Background(), cfg.Shopify.ShopDomain)
	if err != nil {
		logger.Fatal("No tag index for shop", zap.String("shop", cfg.Shopify.ShopDomain), zap.Error(err))
	}

	fmt.Printf("Shop: %s\nUpdated: %s\nTags (%d):\n", idx.Shop, idx.UpdatedAt.Format("2006-01-02 15:04:05"), len(idx.Tags))
	for _, tag := range idx.Tags {
		fmt.Printf("  %s\n", tag)
	}
}
