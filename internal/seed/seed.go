// Package seed derives the result seed that drives winner selection.
//
// Every draw combines two halves: a public seed (the draw timestamp,
// recorded openly alongside the result) and a secret seed known only to
// the operator at draw time. The result seed is a slow key derivation
// over both, so that once the secret is disclosed anyone can recompute
// the exact result, while the secret cannot be cheaply brute-forced from
// a published (publicSeed, resultSeed) pair beforehand.
package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

// Derivation parameters. These are fixed: changing either breaks
// re-verification of every previously recorded draw.
const (
	// Iterations is the PBKDF2 iteration count. Deliberately high so a
	// disclosed result cannot be used to guess the secret offline at low
	// cost.
	Iterations = 100_000

	// KeyLen is the derived key length in bytes (256-bit output).
	KeyLen = 32
)

// Deriver produces seed pairs. The zero value is not usable; call New.
type Deriver struct {
	now func() time.Time
}

// New returns a Deriver reading the system clock.
func New() *Deriver {
	return &Deriver{now: time.Now}
}

// NewWithClock returns a Deriver with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Deriver {
	return &Deriver{now: now}
}

// Derive captures the current UTC time as the public seed and derives
// the result seed from it and the secret.
//
// The public seed is formatted as RFC 3339 with nanoseconds and is
// generated fresh per call, never reused. An empty secret is valid
// input: it weakens the brute-force protection but not correctness.
func (d *Deriver) Derive(secret string) (publicSeed, resultSeed string) {
	publicSeed = d.now().UTC().Format(time.RFC3339Nano)
	return publicSeed, Result(secret, publicSeed)
}

// Result recomputes the result seed for a known (secret, publicSeed)
// pair. This is the verification path: given both halves of a recorded
// draw, the returned value must match the stored result_seed exactly.
func Result(secret, publicSeed string) string {
	dk := pbkdf2.Key([]byte(secret), []byte(publicSeed), Iterations, KeyLen, sha256.New)
	return hex.EncodeToString(dk)
}
