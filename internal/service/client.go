package service

import (
	"context"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

// GraphQLClient is the slice of the Shopify client the services need.
// Tests substitute a canned-response fake.
type GraphQLClient interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}
