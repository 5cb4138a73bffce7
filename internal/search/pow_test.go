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

func solvedBatch(t *testing.T, gate *search.PowGate) []string {
	t.Helper()
	batch := make([]string, search.ChallengeBatchSize)
	for i := range batch {
		challenge, err := gate.Issue()
		require.NoError(t, err)
		solved, err := search.Solve(challenge)
		require.NoError(t, err)
		batch[i] = solved
	}
	return batch
}

func newTestGate(seen search.SeenStore) *search.PowGate {
	// A low difficulty keeps Solve's brute force instant in tests; the
	// production default (18 bits) is exercised indirectly through
	// NewPowGate's wiring in cmd/api.
	return &search.PowGate{Seen: seen, Difficulty: 4}
}

func TestPowGate_ValidBatchPasses(t *testing.T) {
	gate := newTestGate(newMemSeenStore())
	ok, err := gate.ValidateBatch(context.Background(), solvedBatch(t, gate))

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPowGate_WrongBatchSizeRejected(t *testing.T) {
	gate := newTestGate(newMemSeenStore())
	ok, err := gate.ValidateBatch(context.Background(), []string{"only-one"})

	require.Error(t, err)
	assert.False(t, ok)
}

func TestPowGate_ReuseWithinBatchRejected(t *testing.T) {
	gate := newTestGate(newMemSeenStore())
	challenge, err := gate.Issue()
	require.NoError(t, err)
	solved, err := search.Solve(challenge)
	require.NoError(t, err)

	batch := make([]string, search.ChallengeBatchSize)
	for i := range batch {
		batch[i] = solved
	}

	ok, err := gate.ValidateBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPowGate_TokenSingleUseAcrossCalls(t *testing.T) {
	seen := newMemSeenStore()
	gate := newTestGate(seen)
	batch := solvedBatch(t, gate)

	ok, err := gate.ValidateBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.ValidateBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.False(t, ok, "a previously validated batch must not validate again")
}

func TestPowGate_MalformedTokenRejected(t *testing.T) {
	gate := newTestGate(newMemSeenStore())
	batch := solvedBatch(t, gate)
	batch[0] = "not-a-real-token"

	ok, err := gate.ValidateBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.False(t, ok)
}
