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

func TestRanker_CachedSingle(t *testing.T) {
	store := newMemStore()
	cache := newMemCache()
	cache.entries["butter"] = []string{"1001"}

	ranker := search.NewRanker(store, cache)
	refs, err := ranker.Rank(context.Background(), "butter", 1, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, refs)
}

func TestRanker_CacheMissSingleAlias(t *testing.T) {
	store := newMemStore()
	store.aliases["butter"] = []string{"1"}
	store.postings["1"] = []string{"1001"}
	cache := newMemCache()

	ranker := search.NewRanker(store, cache)
	refs, err := ranker.Rank(context.Background(), "butter", 1, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, refs)
	assert.Equal(t, []string{"1001"}, cache.entries["butter"])
}

func TestRanker_TwoWordExactMatchWins(t *testing.T) {
	store := newMemStore()
	store.aliases["butter"] = []string{"1"}
	store.aliases["flour"] = []string{"2"}
	store.aliases["butter flour"] = []string{"3"}
	store.postings["3"] = []string{"1001"}

	ranker := search.NewRanker(store, newMemCache())
	refs, err := ranker.Rank(context.Background(), "butter flour", 2, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, refs)
}

func TestRanker_TwoWordPartialMatchUnion(t *testing.T) {
	store := newMemStore()
	store.aliases["butter"] = []string{"1"}
	store.aliases["flour"] = []string{"2"}
	store.postings["1"] = []string{"1001"}
	store.postings["2"] = []string{"1002"}

	ranker := search.NewRanker(store, newMemCache())
	refs, err := ranker.Rank(context.Background(), "butter flour", 2, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"1001", "1002"}, refs)
}

func TestRanker_EmptyQuery(t *testing.T) {
	store := newMemStore()
	cache := newMemCache()

	ranker := search.NewRanker(store, cache)
	refs, err := ranker.Rank(context.Background(), "", 20, 3)

	require.NoError(t, err)
	assert.Empty(t, refs)
	assert.Empty(t, cache.entries)
}

func TestRanker_EmptyPostingsNoCacheWrite(t *testing.T) {
	store := newMemStore()
	cache := newMemCache()

	ranker := search.NewRanker(store, cache)
	refs, err := ranker.Rank(context.Background(), "nothing matches this", 20, 3)

	require.NoError(t, err)
	assert.Empty(t, refs)
	assert.Empty(t, cache.entries)
}

func TestRanker_RankIsSortedAndDeduplicated(t *testing.T) {
	store := newMemStore()
	store.aliases["a"] = []string{"tag"}
	store.postings["tag"] = []string{"zzz", "aaa", "mmm"}

	ranker := search.NewRanker(store, newMemCache())
	refs, err := ranker.Rank(context.Background(), "a", 20, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"aaa", "mmm", "zzz"}, refs)
}

func TestRanker_DisabledCacheNeverBreaksCorrectness(t *testing.T) {
	store := newMemStore()
	store.aliases["butter"] = []string{"1"}
	store.postings["1"] = []string{"1001"}

	ranker := search.NewRanker(store, disabledCache{})
	refs, err := ranker.Rank(context.Background(), "butter", 1, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, refs)
}
