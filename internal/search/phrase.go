// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import "strings"

// Phrase is a whitespace-joined n-gram of query words paired with its
// length-weighted score.
type Phrase struct {
	Text  string
	Score int
}

// GeneratePhrases splits query into overlapping, bounded n-gram phrases.
//
// query is split on single-space boundaries; empty tokens are dropped and
// only the first wordMax tokens are considered. For each start index i,
// phrases of length k in [1, min(phraseMax, n-i)] are emitted as the
// whitespace-joined slice W[i:i+k], scored (10+k)*k — strictly increasing
// in k, so longer phrase matches dominate shorter ones. A phrase that
// legitimately recurs at multiple start positions is emitted more than
// once; both occurrences contribute to the aggregate score downstream.
func GeneratePhrases(query string, wordMax, phraseMax int) []Phrase {
	words := make([]string, 0, wordMax)
	for _, tok := range strings.Split(query, " ") {
		if tok == "" {
			continue
		}
		words = append(words, tok)
		if len(words) == wordMax {
			break
		}
	}

	n := len(words)
	var phrases []Phrase
	for i := 0; i < n; i++ {
		maxK := phraseMax
		if n-i < maxK {
			maxK = n - i
		}
		for k := 1; k <= maxK; k++ {
			phrases = append(phrases, Phrase{
				Text:  strings.Join(words[i:i+k], " "),
				Score: phraseScore(k),
			})
		}
	}
	return phrases
}

// phraseScore is the length-weighted score for a phrase of k words.
func phraseScore(k int) int {
	return (10 + k) * k
}
