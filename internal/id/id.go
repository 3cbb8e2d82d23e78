// Package id generates opaque unique identifiers for new entities.
package id

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh opaque identifier. Prefers a random UUID; if the
// random source is unavailable it falls back to a timestamp plus random
// suffix, which is unique enough for a single-user tool. Identifiers
// are never secrets.
func New() string {
	u, err := uuid.NewRandom()
	if err == nil {
		return u.String()
	}

	var b [8]byte
	rand.Read(b[:]) //nolint:errcheck // fallback path, best effort
	return fmt.Sprintf("%d-%x", time.Now().UnixMilli(), b)
}
