package shopify

// ProductUpdateMutation patches product-level fields (title,
// descriptionHtml, vendor, productType, tags).
const ProductUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkUpdateMutation patches variant price fields.
const ProductVariantsBulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// InventoryAdjustQuantitiesMutation applies every inventory delta of a
// submission in one call.
const InventoryAdjustQuantitiesMutation = `
mutation inventoryAdjustQuantities($input: InventoryAdjustQuantitiesInput!) {
  inventoryAdjustQuantities(input: $input) {
    inventoryAdjustmentGroup {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductInput carries the changed product-level fields. Only fields
// that actually changed are set; the rest stay nil and are omitted.
type ProductInput struct {
	ID              string   `json:"id"`
	Title           *string  `json:"title,omitempty"`
	DescriptionHTML *string  `json:"descriptionHtml,omitempty"`
	Vendor          *string  `json:"vendor,omitempty"`
	ProductType     *string  `json:"productType,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// ProductVariantsBulkInput carries the changed price fields for one
// variant, each formatted to exactly two decimal places.
type ProductVariantsBulkInput struct {
	ID             string  `json:"id"`
	Price          *string `json:"price,omitempty"`
	CompareAtPrice *string `json:"compareAtPrice,omitempty"`
}

// InventoryAdjustQuantitiesInput batches signed quantity deltas with a
// fixed reason code.
type InventoryAdjustQuantitiesInput struct {
	Reason  string                 `json:"reason"`
	Name    string                 `json:"name"`
	Changes []InventoryChangeInput `json:"changes"`
}

// InventoryChangeInput is one delta within an adjustment batch.
type InventoryChangeInput struct {
	InventoryItemID string `json:"inventoryItemId"`
	LocationID      string `json:"locationId"`
	Delta           int    `json:"delta"`
}
