// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/ribbit/pkg/slug"
)

// Indexer keeps the alias, postings, and item stores mutually consistent
// when new items are written.
type Indexer struct {
	Store PostingsStore
}

// NewIndexer constructs an Indexer over the given store.
func NewIndexer(store PostingsStore) *Indexer {
	return &Indexer{Store: store}
}

// Insert slugs item (if not already slugged), writes the item body, and
// writes postings for every DerivedTags(item) entry. The item write and
// the postings write are issued concurrently via errgroup and the call
// completes when both succeed; if either fails the other's effect may
// already be visible at the store — this repo, like the reference it is
// ported from, makes no atomicity guarantee here (see the Indexer
// component notes). Re-inserting the same title overwrites the item body;
// tag postings are additive and are never cleaned up on overwrite.
func (idx *Indexer) Insert(ctx context.Context, item Item) (ItemRef, error) {
	if item.Slug == "" {
		item.Slug = slug.From(item.Title)
	}
	tags := DerivedTags(item)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return idx.Store.PutItem(gctx, item)
	})
	group.Go(func() error {
		return idx.Store.PutTagPostings(gctx, tags, item.Slug)
	})
	if err := group.Wait(); err != nil {
		return "", storeUnavailable(err)
	}

	return item.Slug, nil
}

// PutAlias appends tags to the alias set for phrase — administrative,
// exposed on the Indexer but not part of the search hot path.
func (idx *Indexer) PutAlias(ctx context.Context, phrase string, tags []Tag) error {
	if err := idx.Store.PutAlias(ctx, phrase, tags); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// DerivedTags is the concatenation of every lowercased whitespace-split
// word of item.Title followed by item.SearchTags, verbatim and in order.
// Duplicates are permitted and harmless — the postings store is
// set-valued.
func DerivedTags(item Item) []Tag {
	titleWords := strings.Fields(item.Title)
	tags := make([]Tag, 0, len(titleWords)+len(item.SearchTags))
	for _, w := range titleWords {
		tags = append(tags, strings.ToLower(w))
	}
	tags = append(tags, item.SearchTags...)
	return tags
}
