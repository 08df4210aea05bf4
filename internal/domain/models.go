package domain

import (
	"time"

	"github.com/google/uuid"
)

// TagIndex holds the distinct set of product tags for one shop,
// rebuilt in full on each indexer run.
type TagIndex struct {
	ID        uuid.UUID
	Shop      string
	Tags      []string
	UpdatedAt time.Time
}

// Session maps a shop domain to its Admin API access token. Rows are
// written by the OAuth handshake; this app only reads them.
type Session struct {
	ID          uuid.UUID
	Shop        string
	AccessToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductSummary is one listing row. Fetched per page, never persisted.
type ProductSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ProductType  string   `json:"productType"`
	Vendor       string   `json:"vendor"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
}

// PageInfo is the continuation state of a paginated product query.
// Changing any filter term invalidates the cursor; the caller restarts
// from a null cursor.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor,omitempty"`
}

// FilterFacets are the choice lists offered in the filter UI.
type FilterFacets struct {
	ProductTypes []string     `json:"productTypes"`
	Vendors      []string     `json:"vendors"`
	Collections  []Collection `json:"collections"`
	Tags         []string     `json:"tags"`
}

// Collection is a custom or smart collection usable as a listing scope.
type Collection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// EditedProduct is the confirmation-banner view of a product touched by
// a bulk edit.
type EditedProduct struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FeaturedImage *Image `json:"featuredImage,omitempty"`
}

// Image is a product image reference.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// EditableProduct is the flat diff base for one product in a bulk-edit
// session. Tags are carried as a single comma-and-space-joined display
// string and re-split on save.
type EditableProduct struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	DescriptionHTML string            `json:"descriptionHtml"`
	Vendor          string            `json:"vendor"`
	ProductType     string            `json:"productType"`
	Tags            string            `json:"tags"`
	FeaturedImage   *Image            `json:"featuredImage,omitempty"`
	Variants        []EditableVariant `json:"variants"`
}

// EditableVariant carries the price fields plus the available quantity
// at the single resolved location.
type EditableVariant struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	CompareAtPrice    string `json:"compareAtPrice"`
	InventoryItemID   string `json:"inventoryItemId"`
	InventoryQuantity int    `json:"inventoryQuantity"`
	LocationID        string `json:"locationId"`
}

// BulkOperation is the status view of the shop's current bulk
// operation. ObjectCount arrives as a string (UnsignedInt64 on the
// wire).
type BulkOperation struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	ErrorCode      string `json:"errorCode,omitempty"`
	ObjectCount    string `json:"objectCount"`
	URL            string `json:"url,omitempty"`
	PartialDataURL string `json:"partialDataUrl,omitempty"`
}

// InventoryChange is one signed adjustment to a location's available
// quantity. All changes in a submission go out as a single batch.
type InventoryChange struct {
	InventoryItemID string `json:"inventoryItemId"`
	LocationID      string `json:"locationId"`
	Delta           int    `json:"delta"`
}
