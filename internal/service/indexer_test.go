package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

func tagsPage(hasNext bool, cursor string, productTags ...[]string) string {
	edges := ""
	for i, tags := range productTags {
		if i > 0 {
			edges += ","
		}
		list := ""
		for j, t := range tags {
			if j > 0 {
				list += ","
			}
			list += fmt.Sprintf("%q", t)
		}
		edges += fmt.Sprintf(`{"node":{"tags":[%s]}}`, list)
	}
	return fmt.Sprintf(
		`{"products":{"pageInfo":{"hasNextPage":%t,"endCursor":%q},"edges":[%s]}}`,
		hasNext, cursor, edges,
	)
}

func TestCollectAllTags(t *testing.T) {
	t.Run("DedupesAndTrimsAcrossPages", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(tagsPage(true, "c1", []string{"red", " blue "}, []string{"red"}), nil)
		client.queue(tagsPage(false, "c2", []string{"green", "", "  "}), nil)

		tags, err := CollectAllTags(context.Background(), client)
		require.NoError(t, err)
		assert.Equal(t, []string{"blue", "green", "red"}, tags)

		// Second request must thread the first page's cursor.
		require.Len(t, client.calls, 2)
		assert.Nil(t, client.calls[0].Variables["cursor"])
		assert.Equal(t, "c1", client.calls[1].Variables["cursor"])
		assert.Equal(t, tagPageSize, client.calls[0].Variables["first"])
	})

	t.Run("ZeroProducts", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(tagsPage(false, ""), nil)

		tags, err := CollectAllTags(context.Background(), client)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("AbortsOnMidWalkError", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(tagsPage(true, "c1", []string{"red"}), nil)
		client.queue("", fmt.Errorf("backend unavailable"))

		_, err := CollectAllTags(context.Background(), client)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend unavailable")
	})
}

func TestIndexAllTags(t *testing.T) {
	t.Run("ReplacesStoredSet", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(tagsPage(false, "", []string{"sale", "new"}), nil)
		repo := newFakeTagRepo()
		repo.indexes["shop.myshopify.com"] = []string{"stale"}

		err := IndexAllTags(context.Background(), "shop.myshopify.com", client, repo, testLogger())
		require.NoError(t, err)
		assert.Equal(t, []string{"new", "sale"}, repo.indexes["shop.myshopify.com"])
		assert.Equal(t, 1, repo.replaces)
	})

	t.Run("NoPartialWriteOnError", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(tagsPage(true, "c1", []string{"red"}), nil)
		client.queue("", fmt.Errorf("boom"))
		repo := newFakeTagRepo()
		repo.indexes["shop.myshopify.com"] = []string{"previous"}

		err := IndexAllTags(context.Background(), "shop.myshopify.com", client, repo, testLogger())
		require.Error(t, err)
		assert.Equal(t, 0, repo.replaces)
		assert.Equal(t, []string{"previous"}, repo.indexes["shop.myshopify.com"])
	})

	t.Run("Idempotent", func(t *testing.T) {
		repo := newFakeTagRepo()
		for i := 0; i < 2; i++ {
			client := &fakeClient{}
			client.queue(tagsPage(false, "", []string{"b", "a"}, []string{"a"}), nil)
			err := IndexAllTags(context.Background(), "shop.myshopify.com", client, repo, testLogger())
			require.NoError(t, err)
		}
		assert.Equal(t, []string{"a", "b"}, repo.indexes["shop.myshopify.com"])
	})

	t.Run("EmptyCatalogWritesEmptyList", func(t *testing.T) {
		client := &fakeClient{}
		client.queue(tagsPage(false, ""), nil)
		repo := newFakeTagRepo()

		err := IndexAllTags(context.Background(), "shop.myshopify.com", client, repo, testLogger())
		require.NoError(t, err)
		tags, ok := repo.indexes["shop.myshopify.com"]
		require.True(t, ok)
		assert.Empty(t, tags)
	})
}

func TestReindexTagsUsesSharedLock(t *testing.T) {
	// Smoke check that the exported entry point works end to end.
	client := &fakeClient{}
	client.respondTo(shopify.ProductTagsQuery, tagsPage(false, "", []string{"x"}))
	repo := newFakeTagRepo()

	err := ReindexTags(context.Background(), "shop.myshopify.com", client, repo, testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, repo.indexes["shop.myshopify.com"])
}
