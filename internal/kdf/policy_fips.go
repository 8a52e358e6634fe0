//go:build requirefips

package kdf

import "errors"

var errDigestDisallowed = errors.New("digest disallowed by FIPS policy")

// Digests outside the SHA-2 family stay resolvable (so callers can
// distinguish a policy ban from a typo) but refuse to derive.
var disallowed = map[Hash]bool{
	SHA1:    true,
	SHA3256: true,
	SHA3512: true,
}

func policyCheck(h Hash) error {
	if disallowed[h] {
		return errDigestDisallowed
	}
	return nil
}
