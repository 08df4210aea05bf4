package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/pkg/errors"
)

// EditSession is the payload of one bulk-edit screen: the editable
// records, the single location all quantities are read at, and the
// fields the operator chose to edit.
type EditSession struct {
	Products     []domain.EditableProduct `json:"products"`
	LocationID   string                   `json:"locationId"`
	FieldsToEdit []string                 `json:"fieldsToEdit"`
}

// Editor loads current server state into flat editable records.
type Editor struct {
	client GraphQLClient
	logger *zap.Logger
}

// NewEditor creates a new bulk edit loader
func NewEditor(client GraphQLClient, logger *zap.Logger) *Editor {
	return &Editor{client: client, logger: logger}
}

// JoinTags renders a tag list as the single editable display string.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// SplitTags parses the display string back into a tag list: split on
// commas, trim, drop empty entries. Duplicates are preserved.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tags = append(tags, p)
	}
	return tags
}

// ResolveFirstLocation returns the first available inventory location.
// Inventory quantity is meaningless without a location context, so no
// location is a fatal precondition failure for the whole edit session.
func (e *Editor) ResolveFirstLocation(ctx context.Context) (string, error) {
	resp, err := e.client.Execute(ctx, shopify.FirstLocationQuery, nil)
	if err != nil {
		return "", fmt.Errorf("failed to resolve location: %w", err)
	}

	var result struct {
		Locations struct {
			Edges []struct {
				Node struct {
					ID string `json:"id"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"locations"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("failed to parse locations: %w", err)
	}
	if len(result.Locations.Edges) == 0 {
		return "", &errors.ErrPrecondition{Message: "no inventory location available"}
	}
	return result.Locations.Edges[0].Node.ID, nil
}

// LoadEditableProducts fetches the requested products' current field
// values plus per-location inventory and reshapes them into flat
// editable records. Ids that no longer resolve (deleted concurrently)
// are silently dropped.
func (e *Editor) LoadEditableProducts(ctx context.Context, ids, fields []string) (*EditSession, error) {
	if len(ids) == 0 {
		return nil, &errors.ErrValidation{Message: "no product IDs"}
	}

	locationID, err := e.ResolveFirstLocation(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Execute(ctx, shopify.EditableProductsQuery, map[string]interface{}{
		"ids":        ids,
		"locationId": locationID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var result struct {
		Nodes []*struct {
			ID              string        `json:"id"`
			Title           string        `json:"title"`
			DescriptionHTML string        `json:"descriptionHtml"`
			Vendor          string        `json:"vendor"`
			ProductType     string        `json:"productType"`
			Tags            []string      `json:"tags"`
			FeaturedImage   *domain.Image `json:"featuredImage"`
			Variants        struct {
				Edges []struct {
					Node struct {
						ID             string  `json:"id"`
						Title          string  `json:"title"`
						Price          string  `json:"price"`
						CompareAtPrice *string `json:"compareAtPrice"`
						InventoryItem  *struct {
							ID             string `json:"id"`
							InventoryLevel *struct {
								Quantities []struct {
									Name     string `json:"name"`
									Quantity int    `json:"quantity"`
								} `json:"quantities"`
							} `json:"inventoryLevel"`
						} `json:"inventoryItem"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"variants"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse products: %w", err)
	}

	session := &EditSession{
		Products:     make([]domain.EditableProduct, 0, len(result.Nodes)),
		LocationID:   locationID,
		FieldsToEdit: fields,
	}

	for _, node := range result.Nodes {
		if node == nil || node.ID == "" {
			// Product deleted between listing and editing.
			continue
		}

		product := domain.EditableProduct{
			ID:              node.ID,
			Title:           node.Title,
			DescriptionHTML: node.DescriptionHTML,
			Vendor:          node.Vendor,
			ProductType:     node.ProductType,
			Tags:            JoinTags(node.Tags),
			FeaturedImage:   node.FeaturedImage,
			Variants:        make([]domain.EditableVariant, 0, len(node.Variants.Edges)),
		}

		for _, edge := range node.Variants.Edges {
			v := edge.Node
			variant := domain.EditableVariant{
				ID:         v.ID,
				Title:      v.Title,
				Price:      v.Price,
				LocationID: locationID,
			}
			if v.CompareAtPrice != nil {
				variant.CompareAtPrice = *v.CompareAtPrice
			}
			if v.InventoryItem != nil {
				variant.InventoryItemID = v.InventoryItem.ID
				if v.InventoryItem.InventoryLevel != nil {
					for _, q := range v.InventoryItem.InventoryLevel.Quantities {
						if q.Name == "available" {
							variant.InventoryQuantity = q.Quantity
							break
						}
					}
				}
			}
			product.Variants = append(product.Variants, variant)
		}

		session.Products = append(session.Products, product)
	}

	return session, nil
}
