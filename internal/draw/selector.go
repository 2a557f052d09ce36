// Package draw implements deterministic winner selection.
package draw

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sort"

	"github.com/seehuhn/mt19937"
)

// Select picks winners from participants using the result seed.
//
// The eligible pool is the participant list with excludes removed and
// duplicates collapsed, sorted bytewise. The sort is mandatory: sampling
// output depends on input order, so the pool order must be canonical
// regardless of how the payload listed participants.
//
// Selection commits to one exact procedure, and recorded draws can only
// be re-verified with this same procedure:
//
//  1. decode the hex result seed into 32 bytes,
//  2. split into four big-endian uint64 words and seed an MT19937
//     generator with them,
//  3. run a partial Fisher–Yates shuffle over the pool, emitting the
//     first count elements in selection order.
//
// count is min(winnerCount, len(pool)); a non-positive winnerCount
// yields no winners and is not an error. The returned winners keep the
// generator's emission order and are never re-sorted.
//
// The only error is a result seed that is not valid hex, which can only
// happen when re-verifying a corrupted record.
func Select(participants, excludes []string, winnerCount int, resultSeed string) (winners, pool []string, err error) {
	pool = buildPool(participants, excludes)

	count := winnerCount
	if count > len(pool) {
		count = len(pool)
	}
	if count <= 0 {
		return []string{}, pool, nil
	}

	rng, err := newRNG(resultSeed)
	if err != nil {
		return nil, nil, err
	}

	scratch := make([]string, len(pool))
	copy(scratch, pool)

	winners = make([]string, 0, count)
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
		winners = append(winners, scratch[i])
	}

	return winners, pool, nil
}

// buildPool returns the canonical eligible pool: deduplicated, with
// excluded identifiers removed, sorted bytewise.
func buildPool(participants, excludes []string) []string {
	excluded := make(map[string]struct{}, len(excludes))
	for _, e := range excludes {
		excluded[e] = struct{}{}
	}

	seen := make(map[string]struct{}, len(participants))
	pool := make([]string, 0, len(participants))
	for _, p := range participants {
		if _, ok := excluded[p]; ok {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pool = append(pool, p)
	}

	sort.Strings(pool)
	return pool
}

// newRNG seeds a fresh MT19937 instance from the hex result seed. The
// generator is local to one Select call; there is no process-wide RNG
// state to interfere across calls.
func newRNG(resultSeed string) (*rand.Rand, error) {
	raw, err := hex.DecodeString(resultSeed)
	if err != nil {
		return nil, fmt.Errorf("result seed is not valid hex: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("result seed is empty")
	}

	words := make([]uint64, 0, (len(raw)+7)/8)
	for i := 0; i < len(raw); i += 8 {
		end := i + 8
		if end > len(raw) {
			buf := make([]byte, 8)
			copy(buf, raw[i:])
			words = append(words, binary.BigEndian.Uint64(buf))
			break
		}
		words = append(words, binary.BigEndian.Uint64(raw[i:end]))
	}

	mt := mt19937.New()
	mt.SeedFromSlice(words)
	return rand.New(mt), nil
}
