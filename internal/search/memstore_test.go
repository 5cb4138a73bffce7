// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/ribbit/internal/search"
)

// memStore is an in-memory fake of [search.PostingsStore], grounded in the
// original implementation's own test-only in-memory store.
type memStore struct {
	mu       sync.Mutex
	aliases  map[string][]string
	postings map[string][]string
	items    map[string]search.Item
}

func newMemStore() *memStore {
	return &memStore{
		aliases:  make(map[string][]string),
		postings: make(map[string][]string),
		items:    make(map[string]search.Item),
	}
}

func (s *memStore) TagsForPhrase(_ context.Context, phrase string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.aliases[phrase]...), nil
}

func (s *memStore) ItemRefsForTag(_ context.Context, tag string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.postings[tag]...), nil
}

func (s *memStore) ItemForRef(_ context.Context, ref string) (search.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[ref]
	if !ok {
		return search.Item{}, &search.Error{Kind: search.KindNotFound, Message: ref}
	}
	return item, nil
}

func (s *memStore) PutItem(_ context.Context, item search.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.Slug] = item
	return nil
}

func (s *memStore) PutTagPostings(_ context.Context, tags []string, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range tags {
		s.postings[tag] = appendUnique(s.postings[tag], ref)
	}
	return nil
}

func (s *memStore) PutAlias(_ context.Context, phrase string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range tags {
		s.aliases[phrase] = appendUnique(s.aliases[phrase], tag)
	}
	return nil
}

func appendUnique(set []string, v string) []string {
	for _, existing := range set {
		if existing == v {
			return set
		}
	}
	return append(set, v)
}

// memCache is an in-memory fake of [search.ResultsCache].
type memCache struct {
	mu      sync.Mutex
	entries map[string][]string
	gets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]string)}
}

func (c *memCache) Get(_ context.Context, query string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return append([]string(nil), c.entries[query]...), nil
}

func (c *memCache) Put(_ context.Context, query string, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = append([]string(nil), refs...)
	return nil
}

// disabledCache always misses, modeling an implementation that disables
// itself entirely — the Ranker's correctness must not depend on it.
type disabledCache struct{}

func (disabledCache) Get(context.Context, string) ([]string, error) { return nil, nil }
func (disabledCache) Put(context.Context, string, []string) error   { return nil }

// memSeenStore is an in-memory fake of [search.SeenStore].
type memSeenStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

func newMemSeenStore() *memSeenStore {
	return &memSeenStore{seen: make(map[string]time.Time)}
}

func (s *memSeenStore) CheckAndMark(_ context.Context, challenge string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, wasSeen := s.seen[challenge]
	alreadySeen := wasSeen && time.Now().Before(expiry)
	s.seen[challenge] = time.Now().Add(ttl)
	return alreadySeen, nil
}
