// internal/daily/daily.go
//
// Daily board: every player gets the same layout on a given UTC date.
// The layout is seeded from HMAC-SHA256(salt, YYYY-MM-DD), so the board is
// stable for the day and unpredictable without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic board seed for the date of t.
func Seed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// take first 8 bytes; clear the sign bit so the seed is non-negative
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}

// Source returns a rand.Source seeded for the date of t.
func Source(t time.Time, salt string) rand.Source {
	return rand.NewSource(Seed(t, salt))
}
