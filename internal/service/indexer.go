package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

const (
	tagPageSize   = 250
	indexInterval = time.Minute
)

// Runs must not overlap on a slow backend; the loop and the reindex
// endpoint share this lock.
var tagIndexMu sync.Mutex

// CollectAllTags walks the full product catalog via cursor pagination
// and returns the distinct, trimmed tag set in sorted order. Any
// backend error aborts the walk; no partial set is returned.
func CollectAllTags(ctx context.Context, client GraphQLClient) ([]string, error) {
	seen := make(map[string]struct{})
	cursor := ""
	hasNextPage := true

	for hasNextPage {
		variables := map[string]interface{}{"first": tagPageSize}
		if cursor != "" {
			variables["cursor"] = cursor
		}

		resp, err := client.Execute(ctx, shopify.ProductTagsQuery, variables)
		if err != nil {
			return nil, fmt.Errorf("tag walk failed at cursor %q: %w", cursor, err)
		}

		var result struct {
			Products struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node struct {
						Tags []string `json:"tags"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse tags page: %w", err)
		}

		for _, edge := range result.Products.Edges {
			for _, tag := range edge.Node.Tags {
				tag = strings.TrimSpace(tag)
				if tag == "" {
					continue
				}
				seen[tag] = struct{}{}
			}
		}

		hasNextPage = result.Products.PageInfo.HasNextPage
		cursor = result.Products.PageInfo.EndCursor
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// IndexAllTags rebuilds the stored tag index for one shop. Idempotent;
// the stored set is fully replaced, never merged. A mid-walk error
// leaves the previous index untouched.
func IndexAllTags(ctx context.Context, shop string, client GraphQLClient, tagRepo repository.TagIndexRepository, logger *zap.Logger) error {
	tags, err := CollectAllTags(ctx, client)
	if err != nil {
		return err
	}

	if err := tagRepo.Replace(ctx, shop, tags); err != nil {
		return fmt.Errorf("failed to store tag index for %s: %w", shop, err)
	}

	logger.Info("Tag index rebuilt",
		zap.String("shop", shop),
		zap.Int("tags", len(tags)),
	)
	return nil
}

// ReindexTags rebuilds one shop's tag index under the shared lock, so
// an on-demand reindex cannot overlap the interval loop.
func ReindexTags(ctx context.Context, shop string, client GraphQLClient, tagRepo repository.TagIndexRepository, logger *zap.Logger) error {
	tagIndexMu.Lock()
	defer tagIndexMu.Unlock()
	return IndexAllTags(ctx, shop, client, tagRepo, logger)
}

// RunTagIndexOnce looks up the configured shop's session and rebuilds
// its tag index. Returns an error instead of exiting, so the loop and
// the standalone job can both use it.
func RunTagIndexOnce(ctx context.Context, cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) error {
	shop := cfg.Shopify.ShopDomain
	session, err := repos.Session.GetByShop(ctx, shop)
	if err != nil {
		return fmt.Errorf("no access token for shop %s: %w", shop, err)
	}

	client := shopify.NewClient(shop, session.AccessToken, cfg.Shopify.APIVersion, logger)
	return ReindexTags(ctx, shop, client, repos.TagIndex, logger)
}

// RunTagIndexLoop runs the indexer once, then every indexInterval.
// Call from a goroutine.
func RunTagIndexLoop(ctx context.Context, cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) {
	if err := RunTagIndexOnce(ctx, cfg, repos, logger); err != nil {
		logger.Error("Tag index run failed", zap.Error(err))
	}

	ticker := time.NewTicker(indexInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := RunTagIndexOnce(ctx, cfg, repos, logger); err != nil {
				logger.Error("Tag index run failed", zap.Error(err))
			}
		}
	}
}
