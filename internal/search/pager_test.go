// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ribbit/internal/search"
)

func TestPager_CachedSingle(t *testing.T) {
	store := newMemStore()
	store.items["1001"] = search.Item{Slug: "1001", Title: "Butter"}
	cache := newMemCache()
	cache.entries["butter"] = []string{"1001"}

	pager := search.NewPager(search.NewRanker(store, cache), store)
	items, total, err := pager.Page(context.Background(), "butter", 1, 1, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Butter", items[0].Title)
}

func TestPager_EmptyQuery(t *testing.T) {
	store := newMemStore()
	pager := search.NewPager(search.NewRanker(store, newMemCache()), store)

	items, total, err := pager.Page(context.Background(), "", 20, 3, 18, 1)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, total)
}

func TestPager_PageZeroIsInvalid(t *testing.T) {
	store := newMemStore()
	pager := search.NewPager(search.NewRanker(store, newMemCache()), store)

	_, _, err := pager.Page(context.Background(), "butter", 20, 3, 18, 0)

	require.Error(t, err)
	var searchErr *search.Error
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, search.KindInvalidInput, searchErr.Kind)
}

func TestPager_MissingItemIsHardError(t *testing.T) {
	store := newMemStore()
	store.aliases["butter"] = []string{"1"}
	store.postings["1"] = []string{"missing-slug"}

	pager := search.NewPager(search.NewRanker(store, newMemCache()), store)
	_, _, err := pager.Page(context.Background(), "butter", 1, 1, 10, 1)

	require.Error(t, err)
	var searchErr *search.Error
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, search.KindNotFound, searchErr.Kind)
}

func TestPager_SlicesByPage(t *testing.T) {
	store := newMemStore()
	store.aliases["a"] = []string{"tag"}
	store.postings["tag"] = []string{"a", "b", "c"}
	for _, slug := range []string{"a", "b", "c"} {
		store.items[slug] = search.Item{Slug: slug, Title: slug}
	}

	pager := search.NewPager(search.NewRanker(store, newMemCache()), store)
	items, total, err := pager.Page(context.Background(), "a", 20, 1, 2, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].Slug)
}
