// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"time"
)

// PostingsStore is the abstract capability the Ranker, Pager, and Indexer
// depend on. Concrete implementations back it with a KV store (see
// internal/platform/searchstore for the Redis-backed one); tests back it
// with an in-memory fake. All operations are fallible with a uniform
// [*Error].
type PostingsStore interface {
	// TagsForPhrase returns the tags aliased to phrase. If no alias record
	// exists, callers fall back to treating the phrase as its own tag —
	// this method itself never performs the fallback, it only reports
	// what is on record.
	TagsForPhrase(ctx context.Context, phrase string) ([]Tag, error)

	// ItemRefsForTag returns the postings for tag. A missing tag returns
	// an empty slice, never an error.
	ItemRefsForTag(ctx context.Context, tag Tag) ([]ItemRef, error)

	// ItemForRef resolves a single item reference. A missing ref is a
	// [KindNotFound] error.
	ItemForRef(ctx context.Context, ref ItemRef) (Item, error)

	// PutItem writes (or overwrites) an item body.
	PutItem(ctx context.Context, item Item) error

	// PutTagPostings appends ref to every tag's postings set.
	PutTagPostings(ctx context.Context, tags []Tag, ref ItemRef) error

	// PutAlias appends tags to the alias set for phrase. Administrative;
	// not part of the search hot path.
	PutAlias(ctx context.Context, phrase string, tags []Tag) error
}

// ResultsCache memoizes query → ranked item-refs with a TTL owned by the
// implementation. Implementations MAY disable themselves by always
// returning a miss from Get — the Ranker's correctness never depends on a
// cache hit.
type ResultsCache interface {
	// Get returns the cached ranked refs for query. An empty slice
	// signals a miss; callers must not distinguish "known empty" from
	// "unknown".
	Get(ctx context.Context, query string) ([]ItemRef, error)

	// Put caches refs for query. MUST be a no-op when refs is empty, to
	// avoid caching negative results and amplifying cold misses.
	Put(ctx context.Context, query string, refs []ItemRef) error
}

// SeenStore backs the PowGate's single-use challenge tracking. CheckAndMark
// reports whether challenge had already been seen before this call marked
// it, atomically from the caller's point of view.
type SeenStore interface {
	// CheckAndMark reports true if challenge was already marked seen, and
	// unconditionally (re-)marks it seen with the given TTL regardless of
	// the prior state, matching the reference's mark-after-check policy.
	CheckAndMark(ctx context.Context, challenge string, ttl time.Duration) (alreadySeen bool, err error)
}
