package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

// FetchBulkOperationStatus returns the shop's current bulk operation,
// or nil when none has ever been started.
func FetchBulkOperationStatus(ctx context.Context, client GraphQLClient) (*domain.BulkOperation, error) {
	resp, err := client.Execute(ctx, shopify.CurrentBulkOperationQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bulk operation status: %w", err)
	}

	var result struct {
		CurrentBulkOperation *domain.BulkOperation `json:"currentBulkOperation"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse bulk operation status: %w", err)
	}
	return result.CurrentBulkOperation, nil
}
