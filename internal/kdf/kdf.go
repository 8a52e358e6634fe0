package kdf

import (
	"crypto/hmac"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
)

// Defaults for callers that do not pick their own parameters. The
// iteration count follows the OWASP password-storage recommendation
// for PBKDF2-HMAC-SHA256; the length suits an AES-256 key.
const (
	DefaultIterations = 600000
	DefaultLength     = 32
	DefaultHash       = SHA256
)

// maxBlocks is the largest block count PBKDF2's 32-bit block index can
// address; requests beyond maxBlocks*hLen bytes are unrepresentable.
const maxBlocks = 1<<32 - 1

var (
	ErrInvalidIterations = errors.New("kdf: iteration count must be positive")
	ErrLengthOutOfRange  = errors.New("kdf: requested key length out of range")
	ErrUnknownDigest     = errors.New("kdf: unknown digest algorithm")

	// ErrPrimitive matches any *PrimitiveError via errors.Is.
	ErrPrimitive = errors.New("kdf: hmac primitive failure")
)

// PrimitiveError reports a failure of the underlying HMAC primitive,
// for example a digest banned by the platform's FIPS policy. It is
// never the caller's fault and never worth retrying.
type PrimitiveError struct {
	Digest Hash
	Err    error
}

func (e *PrimitiveError) Error() string {
	return fmt.Sprintf("kdf: hmac-%s: %v", string(e.Digest), e.Err)
}

func (e *PrimitiveError) Unwrap() error { return e.Err }

func (e *PrimitiveError) Is(target error) bool { return target == ErrPrimitive }

// Params carries the named derivation inputs. Password is passed
// separately to Derive, mirroring the usual calling convention where
// the secret is distinct from the public tuning parameters.
type Params struct {
	Salt       []byte
	Iterations int
	Length     int
	Hash       Hash
}

// prf is the keyed pseudorandom function the block loop runs over.
// Sum appends PRF(msg) to b[:0] and returns the result; b and msg may
// alias as long as msg is consumed before b is written, which the
// HMAC implementation guarantees.
type prf interface {
	Size() int
	Sum(b, msg []byte) ([]byte, error)
}

type prfFactory func(d digest, key []byte) (prf, error)

type hmacPRF struct {
	mac hash.Hash
}

func newHMACPRF(d digest, key []byte) (prf, error) {
	return &hmacPRF{mac: hmac.New(d.fn, key)}, nil
}

func (p *hmacPRF) Size() int { return p.mac.Size() }

func (p *hmacPRF) Sum(b, msg []byte) ([]byte, error) {
	p.mac.Reset()
	p.mac.Write(msg)
	return p.mac.Sum(b), nil
}

// Derive computes PBKDF2-HMAC over password with the given parameters
// and returns exactly p.Length bytes. Empty passwords and salts are
// legal; a zero length yields an empty result. The caller owns both
// the inputs and the returned key; no reference to either is retained.
func Derive(password []byte, p Params) ([]byte, error) {
	return derive(password, p, newHMACPRF)
}

// Key is a positional convenience wrapper around Derive.
func Key(password, salt []byte, iterations, length int, h Hash) ([]byte, error) {
	return Derive(password, Params{Salt: salt, Iterations: iterations, Length: length, Hash: h})
}

func derive(password []byte, p Params, mk prfFactory) ([]byte, error) {
	if p.Iterations < 1 {
		return nil, ErrInvalidIterations
	}
	d, ok := digests[p.Hash]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDigest, string(p.Hash))
	}
	if p.Length < 0 || int64(p.Length) > maxBlocks*int64(d.size) {
		return nil, ErrLengthOutOfRange
	}
	if p.Length == 0 {
		return []byte{}, nil
	}
	if err := policyCheck(p.Hash); err != nil {
		return nil, &PrimitiveError{Digest: p.Hash, Err: err}
	}

	f, err := mk(d, password)
	if err != nil {
		return nil, &PrimitiveError{Digest: p.Hash, Err: err}
	}
	dk, err := deriveBlocks(f, p.Salt, p.Iterations, p.Length)
	if err != nil {
		return nil, &PrimitiveError{Digest: p.Hash, Err: err}
	}
	return dk, nil
}

// deriveBlocks runs the RFC 2898 section 5.2 block loop: for each
// block index i, U1 = PRF(salt || INT_BE32(i)), Uj = PRF(U(j-1)),
// T_i = U1 xor ... xor U_iter. The concatenated T blocks are truncated
// to length bytes. Any PRF failure aborts immediately; partial output
// is never returned.
func deriveBlocks(f prf, salt []byte, iterations, length int) ([]byte, error) {
	hLen := f.Size()
	blocks := (length + hLen - 1) / hLen

	dk := make([]byte, 0, blocks*hLen)
	t := make([]byte, hLen)
	u := make([]byte, 0, hLen)
	msg := make([]byte, 0, len(salt)+4)
	var ctr [4]byte

	for block := 1; block <= blocks; block++ {
		binary.BigEndian.PutUint32(ctr[:], uint32(block))
		msg = append(append(msg[:0], salt...), ctr[:]...)

		var err error
		u, err = f.Sum(u[:0], msg)
		if err != nil {
			return nil, err
		}
		if len(u) != hLen {
			return nil, fmt.Errorf("prf returned %d bytes, want %d", len(u), hLen)
		}
		copy(t, u)

		for i := 1; i < iterations; i++ {
			u, err = f.Sum(u[:0], u)
			if err != nil {
				return nil, err
			}
			for j := range t {
				t[j] ^= u[j]
			}
		}
		dk = append(dk, t...)
	}
	return dk[:length], nil
}
