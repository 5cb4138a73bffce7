// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ribbit/internal/search"
)

func TestGeneratePhrases_ScoreIsStrictlyMonotonic(t *testing.T) {
	prev := -1
	for k := 1; k <= 10; k++ {
		phrases := search.GeneratePhrases(wordsOfLength(k), 20, k)
		var longest search.Phrase
		for _, p := range phrases {
			if p.Score > longest.Score {
				longest = p
			}
		}
		assert.Greater(t, longest.Score, prev)
		prev = longest.Score
	}
}

func TestGeneratePhrases_EmptyQuery(t *testing.T) {
	assert.Empty(t, search.GeneratePhrases("", 20, 3))
	assert.Empty(t, search.GeneratePhrases("   ", 20, 3))
}

func TestGeneratePhrases_SingleToken(t *testing.T) {
	phrases := search.GeneratePhrases("butter", 20, 3)
	require.Len(t, phrases, 1)
	assert.Equal(t, "butter", phrases[0].Text)
	assert.Equal(t, 11, phrases[0].Score)
}

func TestGeneratePhrases_Overlapping(t *testing.T) {
	phrases := search.GeneratePhrases("butter flour", 20, 2)
	texts := make([]string, len(phrases))
	for i, p := range phrases {
		texts[i] = p.Text
	}
	assert.ElementsMatch(t, []string{"butter", "flour", "butter flour"}, texts)
}

func TestGeneratePhrases_WordMaxTruncates(t *testing.T) {
	phrases := search.GeneratePhrases("a b c d", 2, 1)
	require.Len(t, phrases, 2)
}

func TestGeneratePhrases_RepeatedPhraseReinforced(t *testing.T) {
	phrases := search.GeneratePhrases("a a", 20, 1)
	count := 0
	for _, p := range phrases {
		if p.Text == "a" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func wordsOfLength(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += "w"
	}
	return s
}
