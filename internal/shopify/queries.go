package shopify

// ProductTagsQuery walks the catalog requesting only tags, threading the
// cursor from each page into the next.
const ProductTagsQuery = `
query getTags($first: Int!, $cursor: String) {
  products(first: $first, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        tags
      }
    }
  }
}
`

// ProductsPageQuery fetches one listing page, optionally narrowed by a
// search query string (title:*x* AND vendor:y ...).
const ProductsPageQuery = `
query getProducts($first: Int!, $cursor: String, $searchQuery: String) {
  products(first: $first, after: $cursor, query: $searchQuery) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        productType
        vendor
        tags
        featuredImage {
          url
          altText
        }
      }
    }
  }
}
`

// CollectionProductsQuery fetches one listing page scoped to a single
// collection. Collection scope and field filters are mutually
// exclusive; the collection wins.
const CollectionProductsQuery = `
query getProductsInCollection($collectionId: ID!, $first: Int!, $cursor: String) {
  collection(id: $collectionId) {
    products(first: $first, after: $cursor) {
      pageInfo {
        hasNextPage
        endCursor
      }
      edges {
        node {
          id
          title
          productType
          vendor
          tags
          featuredImage {
            url
            altText
          }
        }
      }
    }
  }
}
`

// FilterFacetsQuery fetches the filter choice lists. Tags come from the
// indexed store instead, so they are not requested here.
const FilterFacetsQuery = `
query getFilterFacets {
  productTypes(first: 100) {
    edges {
      node
    }
  }
  productVendors(first: 100) {
    edges {
      node
    }
  }
  collections(first: 100, query: "collection_type:smart OR collection_type:custom") {
    edges {
      node {
        id
        title
      }
    }
  }
}
`

// EditedProductsQuery resolves the ids touched by a bulk edit into the
// confirmation-banner summaries. Deleted ids come back as null nodes.
const EditedProductsQuery = `
query getEditedProducts($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      title
      featuredImage {
        url
        altText
      }
    }
  }
}
`

// CurrentBulkOperationQuery reads the shop's current bulk operation,
// if any. Null when the shop never started one.
const CurrentBulkOperationQuery = `
query currentBulkOperation {
  currentBulkOperation {
    id
    status
    errorCode
    objectCount
    url
    partialDataUrl
  }
}
`

// FirstLocationQuery resolves the single inventory location used as the
// quantity context for the whole edit session.
const FirstLocationQuery = `
query getFirstLocation {
  locations(first: 1) {
    edges {
      node {
        id
      }
    }
  }
}
`

// EditableProductsQuery fetches the current field values plus the
// available quantity at one location for each requested product.
const EditableProductsQuery = `
query getEditableProducts($ids: [ID!]!, $locationId: ID!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      title
      descriptionHtml
      vendor
      productType
      tags
      featuredImage {
        url
        altText
      }
      variants(first: 50) {
        edges {
          node {
            id
            title
            price
            compareAtPrice
            inventoryItem {
              id
              inventoryLevel(locationId: $locationId) {
                quantities(names: ["available"]) {
                  name
                  quantity
                }
              }
            }
          }
        }
      }
    }
  }
}
`
