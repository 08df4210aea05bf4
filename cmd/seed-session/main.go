package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository/postgres"
)

// seed-session inserts or refreshes a session row for a shop. In
// production the OAuth handshake writes these; this tool exists for
// development and custom-app installs where the token is issued by
// hand.
func main() {
	shopFlag := pflag.String("shop", "", "Shop domain (e.g. my-store.myshopify.com)")
	tokenFlag := pflag.String("token", "", "Admin API access token for this shop")
	pflag.Parse()

	shop := strings.TrimSpace(*shopFlag)
	token := strings.TrimSpace(*tokenFlag)
	if shop == "" || token == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/seed-session/main.go --shop \"my-store.myshopify.com\" --token \"shpat_...\"")
		os.Exit(1)
	}

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

	now := time.Now()
	res, err := db.Exec(`
		UPDATE sessions SET access_token = $1, updated_at = $2 WHERE shop = $3
	`, token, now, shop)
	if err != nil {
		logger.Fatal("Failed to update session", zap.Error(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = db.Exec(`
			INSERT INTO sessions (id, shop, access_token, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), shop, token, now, now)
		if err != nil {
			logger.Fatal("Failed to insert session", zap.Error(err))
		}
	}

	fmt.Printf("Session stored for %s\n", shop)
}
