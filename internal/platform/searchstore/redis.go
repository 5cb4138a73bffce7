// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package searchstore implements [search.PostingsStore], [search.ResultsCache],
and [search.SeenStore] over Redis.

Key layout:

	post.<slug>       JSON-encoded Item
	tag.<tag>         set of slugs
	aliases.<phrase>  set of tags
	search.<query>    set of slugs, TTL 600s
	<challenge>       boolean marker, TTL 600s (PoW seen-set)

The results cache stores refs in a Redis set, which does not preserve the
Ranker's sort order — Get re-sorts on retrieval so a cache hit still
satisfies the Ranker's "strictly sorted ascending" contract; this is the
repo's resolution of the known order-vs-set-storage asymmetry (see
DESIGN.md).
*/
package searchstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ribbit/internal/search"
)

const resultsCacheTTL = 600 * time.Second

// Store is a Redis-backed implementation of [search.PostingsStore],
// [search.ResultsCache], and [search.SeenStore].
type Store struct {
	client *redis.Client
}

// New wraps an already-connected Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func postKey(slug string) string    { return "post." + slug }
func tagKey(tag string) string      { return "tag." + tag }
func aliasKey(phrase string) string { return "aliases." + phrase }
func searchKey(query string) string { return "search." + query }

// TagsForPhrase implements [search.PostingsStore].
func (s *Store) TagsForPhrase(ctx context.Context, phrase string) ([]search.Tag, error) {
	tags, err := s.client.SMembers(ctx, aliasKey(phrase)).Result()
	if err != nil {
		return nil, fmt.Errorf("searchstore: tags for phrase %q: %w", phrase, err)
	}
	return tags, nil
}

// ItemRefsForTag implements [search.PostingsStore].
func (s *Store) ItemRefsForTag(ctx context.Context, tag search.Tag) ([]search.ItemRef, error) {
	refs, err := s.client.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return nil, fmt.Errorf("searchstore: postings for tag %q: %w", tag, err)
	}
	return refs, nil
}

// ItemForRef implements [search.PostingsStore].
func (s *Store) ItemForRef(ctx context.Context, ref search.ItemRef) (search.Item, error) {
	raw, err := s.client.Get(ctx, postKey(ref)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return search.Item{}, &search.Error{Kind: search.KindNotFound, Message: ref}
		}
		return search.Item{}, fmt.Errorf("searchstore: get item %q: %w", ref, err)
	}

	var item search.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return search.Item{}, &search.Error{Kind: search.KindEncoding, Message: ref, Cause: err}
	}
	return item, nil
}

// PutItem implements [search.PostingsStore].
func (s *Store) PutItem(ctx context.Context, item search.Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return &search.Error{Kind: search.KindEncoding, Message: item.Slug, Cause: err}
	}
	if err := s.client.Set(ctx, postKey(item.Slug), raw, 0).Err(); err != nil {
		return fmt.Errorf("searchstore: put item %q: %w", item.Slug, err)
	}
	return nil
}

// PutTagPostings implements [search.PostingsStore].
func (s *Store) PutTagPostings(ctx context.Context, tags []search.Tag, ref search.ItemRef) error {
	pipe := s.client.Pipeline()
	for _, tag := range tags {
		pipe.SAdd(ctx, tagKey(tag), ref)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("searchstore: put tag postings for %q: %w", ref, err)
	}
	return nil
}

// PutAlias implements [search.PostingsStore].
func (s *Store) PutAlias(ctx context.Context, phrase string, tags []search.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	members := make([]interface{}, len(tags))
	for i, t := range tags {
		members[i] = t
	}
	if err := s.client.SAdd(ctx, aliasKey(phrase), members...).Err(); err != nil {
		return fmt.Errorf("searchstore: put alias %q: %w", phrase, err)
	}
	return nil
}

// Get implements [search.ResultsCache]. Redis set ordering is
// implementation-defined, so results are re-sorted before returning.
func (s *Store) Get(ctx context.Context, query string) ([]search.ItemRef, error) {
	refs, err := s.client.SMembers(ctx, searchKey(query)).Result()
	if err != nil {
		return nil, fmt.Errorf("searchstore: cache get %q: %w", query, err)
	}
	sort.Strings(refs)
	return refs, nil
}

// Put implements [search.ResultsCache]. A no-op on empty refs.
func (s *Store) Put(ctx context.Context, query string, refs []search.ItemRef) error {
	if len(refs) == 0 {
		return nil
	}
	members := make([]interface{}, len(refs))
	for i, r := range refs {
		members[i] = r
	}
	key := searchKey(query)
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, resultsCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("searchstore: cache put %q: %w", query, err)
	}
	return nil
}

// CheckAndMark implements [search.SeenStore] using a SETNX-style check:
// if the challenge key already exists it reports alreadySeen, otherwise it
// sets the key with ttl. Either way the key ends up marked with ttl,
// matching the reference's mark-after-check policy for aborted batches.
func (s *Store) CheckAndMark(ctx context.Context, challenge string, ttl time.Duration) (bool, error) {
	wasSet, err := s.client.SetNX(ctx, challenge, true, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("searchstore: pow seen-set check %q: %w", challenge, err)
	}
	if wasSet {
		return false, nil
	}
	// Already present — re-mark it with a fresh ttl, so every check
	// leaves the challenge marked for the full ttl from that check.
	if err := s.client.Expire(ctx, challenge, ttl).Err(); err != nil {
		return false, fmt.Errorf("searchstore: pow seen-set refresh %q: %w", challenge, err)
	}
	return true, nil
}
