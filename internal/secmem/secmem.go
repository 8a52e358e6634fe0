// Package secmem provides byte-slice hygiene helpers for handling
// passwords and derived key material.
package secmem

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
)

// ClearBytes zeroes a byte slice holding sensitive data.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare compares two byte slices in constant time.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom returns n cryptographically secure random bytes.
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
