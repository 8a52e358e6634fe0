// Package kdf implements PBKDF2 (RFC 2898 section 5.2) in combination
// with HMAC.
//
// Derive turns a low-entropy password into a pseudorandom key of the
// requested length, suitable for use as a symmetric cipher key or as a
// storable password-verification value. The iteration count tunes the
// cost of each derivation; higher counts slow brute-force attacks on
// weak passwords in the same proportion.
//
// Inputs are validated before any cryptographic work happens:
//   - iterations must be positive (ErrInvalidIterations)
//   - the requested length must fit PBKDF2's block-count arithmetic
//     (ErrLengthOutOfRange)
//   - the digest name must be known (ErrUnknownDigest)
//
// A failure of the underlying HMAC primitive is reported as
// *PrimitiveError and matches ErrPrimitive with errors.Is.
//
// Every call is deterministic, synchronous and stateless; concurrent
// use requires no locking. Callers comparing derived values against
// stored ones should use a constant-time comparison such as
// crypto/subtle.ConstantTimeCompare.
package kdf
