package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   string
	}{
		{"Empty", ListParams{}, ""},
		{"TitleOnly", ListParams{Query: "shirt"}, "title:*shirt*"},
		{"TypeOnly", ListParams{ProductType: "Shoes"}, "product_type:Shoes"},
		{"VendorOnly", ListParams{Vendor: "Acme"}, "vendor:Acme"},
		{"TagOnly", ListParams{Tag: "sale"}, "tag:sale"},
		{
			"AllTerms",
			ListParams{Query: "shirt", ProductType: "Apparel", Vendor: "Acme", Tag: "sale"},
			"title:*shirt* AND product_type:Apparel AND vendor:Acme AND tag:sale",
		},
		{
			"AbsentTermsOmitted",
			ListParams{Query: "mug", Tag: "new"},
			"title:*mug* AND tag:new",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchQuery(tt.params))
		})
	}
}

func productsPage(count int, hasNext bool, cursor string) string {
	edges := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			edges += ","
		}
		edges += fmt.Sprintf(
			`{"node":{"id":"gid://shopify/Product/%d","title":"Product %d","productType":"Type","vendor":"Vendor","tags":["a"],"featuredImage":{"url":"https://cdn/p%d.jpg"}}}`,
			i, i, i,
		)
	}
	return fmt.Sprintf(
		`{"products":{"pageInfo":{"hasNextPage":%t,"endCursor":%q},"edges":[%s]}}`,
		hasNext, cursor, edges,
	)
}

func TestListProducts(t *testing.T) {
	t.Run("ParsesPage", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(productsPage(2, true, "cur-1"), nil)
		lister := NewLister(client, newFakeTagRepo(), testLogger())

		page, err := lister.ListProducts(context.Background(), ListParams{Query: "shirt"})
		require.NoError(t, err)
		require.Len(t, page.Products, 2)
		assert.Equal(t, "gid://shopify/Product/0", page.Products[0].ID)
		assert.Equal(t, "https://cdn/p0.jpg", page.Products[0].ThumbnailURL)
		assert.True(t, page.PageInfo.HasNextPage)
		assert.Equal(t, "cur-1", page.PageInfo.EndCursor)

		require.Len(t, client.calls, 1)
		assert.Equal(t, "title:*shirt*", client.calls[0].Variables["searchQuery"])
		assert.Equal(t, ListPageSize, client.calls[0].Variables["first"])
	})

	t.Run("NoSearchQueryWhenUnfiltered", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(productsPage(1, false, ""), nil)
		lister := NewLister(client, newFakeTagRepo(), testLogger())

		_, err := lister.ListProducts(context.Background(), ListParams{})
		require.NoError(t, err)
		_, present := client.calls[0].Variables["searchQuery"]
		assert.False(t, present)
	})

	t.Run("ThreePageWalk", func(t *testing.T) {
		// 120 matching products: 50, 50, 20 with hasNextPage
		// true, true, false.
		client := &fakeClient{}
		client.queue(productsPage(50, true, "c1"), nil)
		client.queue(productsPage(50, true, "c2"), nil)
		client.queue(productsPage(20, false, ""), nil)
		lister := NewLister(client, newFakeTagRepo(), testLogger())

		params := ListParams{Tag: "sale"}
		var all []string
		cursor := ""
		wantNext := []bool{true, true, false}
		wantLen := []int{50, 50, 20}
		for i := 0; i < 3; i++ {
			params.Cursor = cursor
			page, err := lister.ListProducts(context.Background(), params)
			require.NoError(t, err)
			assert.Len(t, page.Products, wantLen[i])
			assert.Equal(t, wantNext[i], page.PageInfo.HasNextPage)
			for _, p := range page.Products {
				all = append(all, p.ID)
			}
			cursor = page.PageInfo.EndCursor
		}
		assert.Len(t, all, 120)
		assert.Equal(t, "c1", client.calls[1].Variables["cursor"])
		assert.Equal(t, "c2", client.calls[2].Variables["cursor"])
	})

	t.Run("CollectionScopeIgnoresFieldFilters", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(`{"collection":{"products":{"pageInfo":{"hasNextPage":false,"endCursor":""},"edges":[{"node":{"id":"gid://shopify/Product/9","title":"P","productType":"","vendor":"","tags":[]}}]}}}`, nil)
		lister := NewLister(client, newFakeTagRepo(), testLogger())

		page, err := lister.ListProducts(context.Background(), ListParams{
			CollectionID: "gid://shopify/Collection/1",
			Vendor:       "Acme",
		})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)

		require.Len(t, client.calls, 1)
		assert.Equal(t, shopify.CollectionProductsQuery, client.calls[0].Query)
		_, present := client.calls[0].Variables["searchQuery"]
		assert.False(t, present)
		assert.Equal(t, "gid://shopify/Collection/1", client.calls[0].Variables["collectionId"])
	})

	t.Run("MissingCollectionYieldsEmptyTerminalPage", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(`{"collection":null}`, nil)
		lister := NewLister(client, newFakeTagRepo(), testLogger())

		page, err := lister.ListProducts(context.Background(), ListParams{CollectionID: "gid://shopify/Collection/404"})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
		assert.False(t, page.PageInfo.HasNextPage)
	})
}

func TestFetchFacets(t *testing.T) {
	facetsData := `{
		"productTypes":{"edges":[{"node":"Apparel"},{"node":"Shoes"}]},
		"productVendors":{"edges":[{"node":"Acme"}]},
		"collections":{"edges":[{"node":{"id":"gid://shopify/Collection/1","title":"Summer"}}]}
	}`

	t.Run("TagsFromIndexedStore", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(facetsData, nil)
		repo := newFakeTagRepo()
		repo.indexes["shop.myshopify.com"] = []string{"blue", "red"}
		lister := NewLister(client, repo, testLogger())

		facets, err := lister.FetchFacets(context.Background(), "shop.myshopify.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"Apparel", "Shoes"}, facets.ProductTypes)
		assert.Equal(t, []string{"Acme"}, facets.Vendors)
		require.Len(t, facets.Collections, 1)
		assert.Equal(t, "Summer", facets.Collections[0].Title)
		assert.Equal(t, []string{"blue", "red"}, facets.Tags)
	})

	t.Run("NoIndexYetMeansEmptyTags", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(facetsData, nil)
		lister := NewLister(client, newFakeTagRepo(), testLogger())

		facets, err := lister.FetchFacets(context.Background(), "other.myshopify.com")
		require.NoError(t, err)
		assert.Empty(t, facets.Tags)
	})
}

func TestFetchEditedProducts(t *testing.T) {
	client := &fakeClient{}
	client.queue(`{"nodes":[{"id":"gid://shopify/Product/1","title":"Kept"},null,{"id":"","title":""}]}`, nil)
	lister := NewLister(client, newFakeTagRepo(), testLogger())

	products, err := lister.FetchEditedProducts(context.Background(), []string{"gid://shopify/Product/1", "gid://shopify/Product/2"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Kept", products[0].Title)
}
