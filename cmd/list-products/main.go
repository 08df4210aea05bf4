package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository/postgres"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/service"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

// list-products prints one listing page as JSON, with the same filter
// semantics as GET /app/bulk-products. Handy for checking filter query
// construction against a live shop.
func main() {
	query := pflag.String("query", "", "Title substring filter")
	productType := pflag.String("type", "", "Exact product type filter")
	vendor := pflag.String("vendor", "", "Exact vendor filter")
	tag := pflag.String("tag", "", "Exact tag filter")
	collectionID := pflag.String("collection", "", "Collection GID scope (field filters ignored)")
	cursor := pflag.String("cursor", "", "Continuation cursor from a previous page")
	pflag.Parse()

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
	ctx := context.Background()

	session, err := repos.Session.GetByShop(ctx, cfg.Shopify.ShopDomain)
	if err != nil {
		logger.Fatal("No session for shop", zap.String("shop", cfg.Shopify.ShopDomain), zap.Error(err))
	}

	client := shopify.NewClient(session.Shop, session.AccessToken, cfg.Shopify.APIVersion, logger)
	lister := service.NewLister(client, repos.TagIndex, logger)

	page, err := lister.ListProducts(ctx, service.ListParams{
		Cursor:       *cursor,
		Query:        *query,
		ProductType:  *productType,
		Vendor:       *vendor,
		Tag:          *tag,
		CollectionID: *collectionID,
	})
	if err != nil {
		logger.Fatal("Failed to list products", zap.Error(err))
	}

	out, _ := json.MarshalIndent(page, "", "  ")
	fmt.Println(string(out))
}
