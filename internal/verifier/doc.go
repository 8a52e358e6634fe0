// Package verifier provides a BBolt-backed store of password
// verification records.
//
// Each record holds the public derivation parameters (digest,
// iterations, length, salt) together with the derived value. Checking
// a password re-derives with the stored parameters and compares in
// constant time; the password itself is never stored.
//
// Database structure uses two buckets:
//   - config: store version, timestamps, store ID (for keyring entries)
//   - records: JSON-encoded records keyed by name
//
// BBolt provides ACID transactions, file locking, and corruption
// detection.
package verifier
