//go:build requirefips

package kdf

import (
	"errors"
	"testing"
)

func TestFIPSPolicyBans(t *testing.T) {
	for _, h := range []Hash{SHA1, SHA3256, SHA3512} {
		// Banned digests stay resolvable so callers can tell a policy
		// ban from a typo.
		if err := h.Validate(); err != nil {
			t.Errorf("%q should still validate: %v", h, err)
		}

		key, err := Key([]byte("password"), []byte("salt"), 1, 20, h)
		if key != nil {
			t.Errorf("%q: expected no key material, got %d bytes", h, len(key))
		}
		if !errors.Is(err, ErrPrimitive) {
			t.Errorf("%q: expected ErrPrimitive match, got %v", h, err)
		}
		var pe *PrimitiveError
		if !errors.As(err, &pe) {
			t.Errorf("%q: expected *PrimitiveError, got %T", h, err)
		} else if pe.Digest != h {
			t.Errorf("%q: error names digest %q", h, pe.Digest)
		}
	}
}

func TestFIPSPolicyAllowsSHA2(t *testing.T) {
	for _, h := range []Hash{SHA224, SHA256, SHA384, SHA512, SHA512224, SHA512256} {
		size, err := h.Size()
		if err != nil {
			t.Fatalf("%q: Size failed: %v", h, err)
		}
		key, err := Key([]byte("password"), []byte("salt"), 2, size, h)
		if err != nil {
			t.Errorf("%q: Key failed: %v", h, err)
			continue
		}
		if len(key) != size {
			t.Errorf("%q: got %d bytes, want %d", h, len(key), size)
		}
	}
}
