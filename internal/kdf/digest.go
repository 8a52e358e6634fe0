package kdf

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"

	"golang.org/x/crypto/sha3"
)

// Hash names a digest algorithm used as the HMAC core.
type Hash string

const (
	SHA1      Hash = "sha1"
	SHA224    Hash = "sha224"
	SHA256    Hash = "sha256"
	SHA384    Hash = "sha384"
	SHA512    Hash = "sha512"
	SHA512224 Hash = "sha512-224"
	SHA512256 Hash = "sha512-256"
	SHA3256   Hash = "sha3-256"
	SHA3512   Hash = "sha3-512"
)

type digest struct {
	size int
	fn   func() hash.Hash
}

var digests = map[Hash]digest{
	SHA1:      {sha1.Size, sha1.New},
	SHA224:    {sha256.Size224, sha256.New224},
	SHA256:    {sha256.Size, sha256.New},
	SHA384:    {sha512.Size384, sha512.New384},
	SHA512:    {sha512.Size, sha512.New},
	SHA512224: {sha512.Size224, sha512.New512_224},
	SHA512256: {sha512.Size256, sha512.New512_256},
	SHA3256:   {32, sha3.New256},
	SHA3512:   {64, sha3.New512},
}

// Validate reports whether h names a known digest algorithm.
func (h Hash) Validate() error {
	if _, ok := digests[h]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDigest, string(h))
	}
	return nil
}

// Size returns the digest's output size in bytes.
func (h Hash) Size() (int, error) {
	d, ok := digests[h]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDigest, string(h))
	}
	return d.size, nil
}

// Digests returns the known digest names, sorted.
func Digests() []Hash {
	names := make([]Hash, 0, len(digests))
	for h := range digests {
		names = append(names, h)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
