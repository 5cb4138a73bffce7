// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// The defaults below mirror the design defaults called out in the external
// interface surface (word_max 12..20, phrase_max 1..3, per_page 18..20).
// Callers are free to pick any value inside those ranges.
const (
	DefaultWordMax   = 16
	DefaultPhraseMax = 2
	DefaultPerPage   = 18
)

// Ranker resolves a free-text query to a deterministically sorted,
// deduplicated slice of winning item references.
type Ranker struct {
	Store PostingsStore
	Cache ResultsCache
}

// NewRanker constructs a Ranker over the given store and cache.
func NewRanker(store PostingsStore, cache ResultsCache) *Ranker {
	return &Ranker{Store: store, Cache: cache}
}

// Rank resolves query to its winning item references.
//
// 1. Cache probe — a non-empty hit is returned verbatim, no store calls.
// 2. Phrase expansion via GeneratePhrases.
// 3. Resolution fan-out: within one phrase, tags are fetched then every
//    tag's postings are fetched concurrently and unioned; all phrases run
//    concurrently. Any store error aborts the whole call.
// 4. Aggregation: per-ref score sums across phrases.
// 5. Winner-take-all: only refs tied at the max score survive.
// 6. Deterministic ascending sort.
// 7. Cache write (no-op on empty results).
func (r *Ranker) Rank(ctx context.Context, query string, wordMax, phraseMax int) ([]ItemRef, error) {
	// A cache error degrades to a miss rather than failing the request.
	if cached, err := r.Cache.Get(ctx, query); err == nil && len(cached) > 0 {
		return cached, nil
	}

	phrases := GeneratePhrases(query, wordMax, phraseMax)
	if len(phrases) == 0 {
		return nil, nil
	}

	perPhraseRefs := make([][]ItemRef, len(phrases))
	group, gctx := errgroup.WithContext(ctx)
	for i, phrase := range phrases {
		i, phrase := i, phrase
		group.Go(func() error {
			refs, err := r.resolvePhrase(gctx, phrase.Text)
			if err != nil {
				return err
			}
			perPhraseRefs[i] = refs
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, storeUnavailable(err)
	}

	scores := make(map[ItemRef]int)
	for i, phrase := range phrases {
		for _, ref := range perPhraseRefs[i] {
			scores[ref] += phrase.Score
		}
	}

	maxScore := 1
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}

	var winners []ItemRef
	for ref, score := range scores {
		if score == maxScore {
			winners = append(winners, ref)
		}
	}
	sort.Strings(winners)

	// A cache write failure is discarded here without being logged — a
	// cache must never fail a user request.
	_ = r.Cache.Put(ctx, query, winners)

	return winners, nil
}

// resolvePhrase fetches the tags aliased to phrase (falling back to the
// phrase itself when no alias exists) and unions the postings for every
// tag, fetched concurrently.
func (r *Ranker) resolvePhrase(ctx context.Context, phrase string) ([]ItemRef, error) {
	tags, err := r.Store.TagsForPhrase(ctx, phrase)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		tags = []Tag{phrase}
	}

	perTagRefs := make([][]ItemRef, len(tags))
	group, gctx := errgroup.WithContext(ctx)
	for i, tag := range tags {
		i, tag := i, tag
		group.Go(func() error {
			refs, err := r.Store.ItemRefsForTag(gctx, tag)
			if err != nil {
				return err
			}
			perTagRefs[i] = refs
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[ItemRef]struct{})
	var union []ItemRef
	for _, refs := range perTagRefs {
		for _, ref := range refs {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			union = append(union, ref)
		}
	}
	return union, nil
}
