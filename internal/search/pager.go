// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pager materializes a 1-indexed page of items from a ranked ref list.
type Pager struct {
	Ranker *Ranker
	Store  PostingsStore
}

// NewPager constructs a Pager over the given ranker and store.
func NewPager(ranker *Ranker, store PostingsStore) *Pager {
	return &Pager{Ranker: ranker, Store: store}
}

// Page ranks query, slices the result to the requested page, and
// concurrently hydrates every referenced item. pageNum is 1-indexed;
// pageNum == 0 is an [KindInvalidInput] error. A ref that fails to
// resolve to an item is a hard [KindNotFound] error (it breaks the
// invariant that every postings ref resolves through the item map).
func (p *Pager) Page(ctx context.Context, query string, wordMax, phraseMax, perPage, pageNum int) ([]Item, int, error) {
	if pageNum < 1 {
		return nil, 0, invalidInput("page_num must be >= 1")
	}

	refs, err := p.Ranker.Rank(ctx, query, wordMax, phraseMax)
	if err != nil {
		return nil, 0, err
	}
	total := len(refs)

	start := (pageNum - 1) * perPage
	if start > total {
		start = total
	}
	end := pageNum * perPage
	if end > total {
		end = total
	}
	pageRefs := refs[start:end]

	items := make([]Item, len(pageRefs))
	group, gctx := errgroup.WithContext(ctx)
	for i, ref := range pageRefs {
		i, ref := i, ref
		group.Go(func() error {
			item, err := p.Store.ItemForRef(gctx, ref)
			if err != nil {
				return notFound(ref)
			}
			items[i] = item
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
