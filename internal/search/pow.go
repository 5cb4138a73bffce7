// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

// PowGate is a one-shot proof-of-work validator guarding [Indexer.Insert].
// It requires a batch of exactly [ChallengeBatchSize] tokens; every token
// must be cryptographically valid, unexpired, and unseen, or the whole
// batch is rejected. Already-marked tokens from an aborted batch remain
// marked — single-use is enforced even on partial batches.
type PowGate struct {
	Seen       SeenStore
	Difficulty uint8
}

const (
	// ChallengeBatchSize is the number of tokens a validate_pow call must
	// supply.
	ChallengeBatchSize = 16

	// DefaultDifficulty is the number of leading zero bits NewPowGate
	// sets for challenges minted by Issue. Validation checks each token's
	// digest against the difficulty encoded in that token.
	DefaultDifficulty uint8 = 18

	// DefaultChallengeWindow is how long an issued challenge remains
	// solvable, measured from issuance.
	DefaultChallengeWindow = 900 * time.Second

	// DefaultSeenTTL is how long a validated token is remembered in the
	// seen-set, preventing replay.
	DefaultSeenTTL = 600 * time.Second

	seedLen  = 16
	nonceLen = 8
)

// NewPowGate constructs a PowGate backed by seen, using the design
// default difficulty.
func NewPowGate(seen SeenStore) *PowGate {
	return &PowGate{Seen: seen, Difficulty: DefaultDifficulty}
}

// Issue mints a fresh challenge: a random seed plus the difficulty and
// issuance time the client must solve against, encoded opaquely. The
// client finds a nonce such that sha256(seed||nonce) has Difficulty
// leading zero bits, appends it, and submits the result to ValidateBatch.
func (g *PowGate) Issue() (string, error) {
	var seed [seedLen]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return "", fmt.Errorf("pow: generate seed: %w", err)
	}
	return encodeChallenge(seed, g.Difficulty, time.Now().Unix()), nil
}

// ValidateBatch validates exactly [ChallengeBatchSize] solved tokens in
// order: each is checked cryptographically (digest difficulty and
// issuance window), then against the seen-set, then marked seen. Any
// failure short-circuits the whole batch to false; challenges already
// marked seen earlier in an aborted batch stay marked.
func (g *PowGate) ValidateBatch(ctx context.Context, tokens []string) (bool, error) {
	if len(tokens) != ChallengeBatchSize {
		return false, powRejected(fmt.Sprintf("expected %d challenges, got %d", ChallengeBatchSize, len(tokens)))
	}

	for _, raw := range tokens {
		solved, err := decodeSolved(raw)
		if err != nil || !cryptographicallyValid(solved) {
			return false, nil
		}

		alreadySeen, err := g.Seen.CheckAndMark(ctx, raw, DefaultSeenTTL)
		if err != nil {
			return false, storeUnavailable(err)
		}
		if alreadySeen {
			return false, nil
		}
	}

	return true, nil
}

// solvedToken is a challenge plus the nonce a client found to satisfy it.
type solvedToken struct {
	seed       [seedLen]byte
	difficulty uint8
	issuedAt   int64
	nonce      [nonceLen]byte
}

func cryptographicallyValid(t solvedToken) bool {
	age := time.Since(time.Unix(t.issuedAt, 0))
	if age < 0 || age > DefaultChallengeWindow {
		return false
	}
	return leadingZeroBits(workDigest(t.seed, t.nonce)) >= int(t.difficulty)
}

func workDigest(seed [seedLen]byte, nonce [nonceLen]byte) [32]byte {
	buf := make([]byte, 0, seedLen+nonceLen)
	buf = append(buf, seed[:]...)
	buf = append(buf, nonce[:]...)
	return sha256.Sum256(buf)
}

func leadingZeroBits(digest [32]byte) int {
	count := 0
	for _, b := range digest {
		if b == 0 {
			count += 8
			continue
		}
		for mask := byte(0x80); mask > 0; mask >>= 1 {
			if b&mask != 0 {
				return count
			}
			count++
		}
	}
	return count
}

func encodeChallenge(seed [seedLen]byte, difficulty uint8, issuedAt int64) string {
	buf := make([]byte, 0, seedLen+1+8)
	buf = append(buf, seed[:]...)
	buf = append(buf, difficulty)
	buf = binary.BigEndian.AppendUint64(buf, uint64(issuedAt))
	return base64.RawURLEncoding.EncodeToString(buf)
}

// Solve brute-forces a nonce satisfying challenge (as minted by Issue) and
// returns the combined, submittable token string. It exists for tests and
// for a reference client; a real client performs the same search.
func Solve(challenge string) (string, error) {
	buf, err := base64.RawURLEncoding.DecodeString(challenge)
	if err != nil || len(buf) != seedLen+1+8 {
		return "", fmt.Errorf("pow: malformed challenge")
	}
	var seed [seedLen]byte
	copy(seed[:], buf[:seedLen])
	difficulty := buf[seedLen]
	issuedAt := int64(binary.BigEndian.Uint64(buf[seedLen+1:]))

	var nonce [nonceLen]byte
	for n := uint64(0); ; n++ {
		binary.BigEndian.PutUint64(nonce[:], n)
		if leadingZeroBits(workDigest(seed, nonce)) >= int(difficulty) {
			return encodeSolved(seed, difficulty, issuedAt, nonce), nil
		}
	}
}

func encodeSolved(seed [seedLen]byte, difficulty uint8, issuedAt int64, nonce [nonceLen]byte) string {
	buf := make([]byte, 0, seedLen+1+8+nonceLen)
	buf = append(buf, seed[:]...)
	buf = append(buf, difficulty)
	buf = binary.BigEndian.AppendUint64(buf, uint64(issuedAt))
	buf = append(buf, nonce[:]...)
	return base64.RawURLEncoding.EncodeToString(buf)
}

func decodeSolved(s string) (solvedToken, error) {
	buf, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil || len(buf) != seedLen+1+8+nonceLen {
		return solvedToken{}, fmt.Errorf("pow: malformed token")
	}
	var t solvedToken
	copy(t.seed[:], buf[:seedLen])
	t.difficulty = buf[seedLen]
	t.issuedAt = int64(binary.BigEndian.Uint64(buf[seedLen+1 : seedLen+9]))
	copy(t.nonce[:], buf[seedLen+9:])
	return t, nil
}
