package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/pkg/errors"
)

// ListPageSize is the fixed product page size of the listing view.
const ListPageSize = 50

// ListParams hold one listing request. A non-empty CollectionID scopes
// the listing to that collection and the field filters are ignored.
type ListParams struct {
	Cursor       string
	Query        string
	ProductType  string
	Vendor       string
	Tag          string
	CollectionID string
}

// ProductPage is one page of summaries plus continuation state. The
// caller appends pages while scrolling and resets to a nil cursor
// whenever any filter term changes.
type ProductPage struct {
	Products []domain.ProductSummary `json:"products"`
	PageInfo domain.PageInfo         `json:"pageInfo"`
}

// Lister serves filtered, cursor-paginated product pages plus the
// filter facets.
type Lister struct {
	client  GraphQLClient
	tagRepo repository.TagIndexRepository
	logger  *zap.Logger
}

// NewLister creates a new product lister
func NewLister(client GraphQLClient, tagRepo repository.TagIndexRepository, logger *zap.Logger) *Lister {
	return &Lister{client: client, tagRepo: tagRepo, logger: logger}
}

// BuildSearchQuery joins the present filter terms into a conjunctive
// Shopify search expression. Title matches by wildcard substring; the
// other terms match exactly. Absent terms are omitted; an empty result
// means no query argument at all.
func BuildSearchQuery(p ListParams) string {
	var parts []string
	if p.Query != "" {
		parts = append(parts, fmt.Sprintf("title:*%s*", p.Query))
	}
	if p.ProductType != "" {
		parts = append(parts, fmt.Sprintf("product_type:%s", p.ProductType))
	}
	if p.Vendor != "" {
		parts = append(parts, fmt.Sprintf("vendor:%s", p.Vendor))
	}
	if p.Tag != "" {
		parts = append(parts, fmt.Sprintf("tag:%s", p.Tag))
	}
	return strings.Join(parts, " AND ")
}

type productConnection struct {
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
	Edges []struct {
		Node struct {
			ID            string        `json:"id"`
			Title         string        `json:"title"`
			ProductType   string        `json:"productType"`
			Vendor        string        `json:"vendor"`
			Tags          []string      `json:"tags"`
			FeaturedImage *domain.Image `json:"featuredImage"`
		} `json:"node"`
	} `json:"edges"`
}

func (c *productConnection) toPage() *ProductPage {
	page := &ProductPage{
		Products: make([]domain.ProductSummary, 0, len(c.Edges)),
		PageInfo: domain.PageInfo{
			HasNextPage: c.PageInfo.HasNextPage,
			EndCursor:   c.PageInfo.EndCursor,
		},
	}
	for _, edge := range c.Edges {
		summary := domain.ProductSummary{
			ID:          edge.Node.ID,
			Title:       edge.Node.Title,
			ProductType: edge.Node.ProductType,
			Vendor:      edge.Node.Vendor,
			Tags:        edge.Node.Tags,
		}
		if edge.Node.FeaturedImage != nil {
			summary.ThumbnailURL = edge.Node.FeaturedImage.URL
		}
		page.Products = append(page.Products, summary)
	}
	return page
}

// ListProducts returns one page of product summaries. A nil/empty
// cursor starts from the first page.
func (l *Lister) ListProducts(ctx context.Context, p ListParams) (*ProductPage, error) {
	if p.CollectionID != "" {
		return l.listCollectionProducts(ctx, p)
	}

	variables := map[string]interface{}{"first": ListPageSize}
	if p.Cursor != "" {
		variables["cursor"] = p.Cursor
	}
	if q := BuildSearchQuery(p); q != "" {
		variables["searchQuery"] = q
	}

	resp, err := l.client.Execute(ctx, shopify.ProductsPageQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var result struct {
		Products productConnection `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse products page: %w", err)
	}
	return result.Products.toPage(), nil
}

func (l *Lister) listCollectionProducts(ctx context.Context, p ListParams) (*ProductPage, error) {
	variables := map[string]interface{}{
		"collectionId": p.CollectionID,
		"first":        ListPageSize,
	}
	if p.Cursor != "" {
		variables["cursor"] = p.Cursor
	}

	resp, err := l.client.Execute(ctx, shopify.CollectionProductsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection products: %w", err)
	}

	var result struct {
		Collection *struct {
			Products productConnection `json:"products"`
		} `json:"collection"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse collection page: %w", err)
	}
	if result.Collection == nil {
		// Deleted or inaccessible collection: empty terminal page.
		return &ProductPage{Products: []domain.ProductSummary{}}, nil
	}
	return result.Collection.Products.toPage(), nil
}

// FetchFacets returns the filter choice lists: product types, vendors
// and collections live from the backend, tags from the indexed store
// (never a live tag scan).
func (l *Lister) FetchFacets(ctx context.Context, shop string) (*domain.FilterFacets, error) {
	resp, err := l.client.Execute(ctx, shopify.FilterFacetsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter facets: %w", err)
	}

	var result struct {
		ProductTypes struct {
			Edges []struct {
				Node string `json:"node"`
			} `json:"edges"`
		} `json:"productTypes"`
		ProductVendors struct {
			Edges []struct {
				Node string `json:"node"`
			} `json:"edges"`
		} `json:"productVendors"`
		Collections struct {
			Edges []struct {
				Node domain.Collection `json:"node"`
			} `json:"edges"`
		} `json:"collections"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse filter facets: %w", err)
	}

	facets := &domain.FilterFacets{
		ProductTypes: make([]string, 0, len(result.ProductTypes.Edges)),
		Vendors:      make([]string, 0, len(result.ProductVendors.Edges)),
		Collections:  make([]domain.Collection, 0, len(result.Collections.Edges)),
		Tags:         []string{},
	}
	for _, e := range result.ProductTypes.Edges {
		facets.ProductTypes = append(facets.ProductTypes, e.Node)
	}
	for _, e := range result.ProductVendors.Edges {
		facets.Vendors = append(facets.Vendors, e.Node)
	}
	for _, e := range result.Collections.Edges {
		facets.Collections = append(facets.Collections, e.Node)
	}

	idx, err := l.tagRepo.GetByShop(ctx, shop)
	if err != nil {
		var notFound *errors.ErrNotFound
		if !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read tag index: %w", err)
		}
		// Indexer has not run yet: empty tag facet, not an error.
	} else {
		facets.Tags = idx.Tags
	}

	return facets, nil
}

// FetchEditedProducts resolves edited ids into confirmation summaries.
// Ids that no longer resolve are dropped.
func (l *Lister) FetchEditedProducts(ctx context.Context, ids []string) ([]domain.EditedProduct, error) {
	resp, err := l.client.Execute(ctx, shopify.EditedProductsQuery, map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch edited products: %w", err)
	}

	var result struct {
		Nodes []*domain.EditedProduct `json:"nodes"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse edited products: %w", err)
	}

	products := make([]domain.EditedProduct, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		products = append(products, *n)
	}
	return products, nil
}
