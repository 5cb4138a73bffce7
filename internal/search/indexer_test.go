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

func TestDerivedTags_ContainsLowercasedTitleWords(t *testing.T) {
	item := search.Item{Title: "Butter Cake", SearchTags: []string{"Dessert"}}
	tags := search.DerivedTags(item)
	assert.Equal(t, []string{"butter", "cake", "Dessert"}, tags)
}

func TestIndexer_InsertWritesItemAndPostings(t *testing.T) {
	store := newMemStore()
	indexer := search.NewIndexer(store)

	ref, err := indexer.Insert(context.Background(), search.Item{
		Title:      "Butter Cake",
		Body:       "recipe",
		SearchTags: []string{"snack"},
	})

	require.NoError(t, err)
	assert.Equal(t, "butter-cake", ref)
	assert.Contains(t, store.postings["butter"], ref)
	assert.Contains(t, store.postings["cake"], ref)
	assert.Contains(t, store.postings["snack"], ref)
	assert.Equal(t, "recipe", store.items[ref].Body)
}

func TestIndexer_ReinsertOverwritesBodyAndKeepsPostings(t *testing.T) {
	store := newMemStore()
	indexer := search.NewIndexer(store)
	ctx := context.Background()

	ref1, err := indexer.Insert(ctx, search.Item{Title: "Butter Cake", Body: "v1"})
	require.NoError(t, err)
	ref2, err := indexer.Insert(ctx, search.Item{Title: "Butter Cake", Body: "v2"})
	require.NoError(t, err)

	assert.Equal(t, ref1, ref2)
	assert.Equal(t, "v2", store.items[ref2].Body)
	assert.Len(t, store.postings["butter"], 1)
}

func TestIndexer_PutAlias(t *testing.T) {
	store := newMemStore()
	indexer := search.NewIndexer(store)

	err := indexer.PutAlias(context.Background(), "butter flour", []string{"3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, store.aliases["butter flour"])
}
