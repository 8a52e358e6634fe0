package cmd

import (
	"fmt"

	"github.com/shirosaki/kdfkit/internal/keyring"
	"github.com/shirosaki/kdfkit/internal/secmem"
)

// Verify checks a password against a stored record. A cached keyring
// password is tried first; a stale keyring entry falls through to the
// prompt instead of failing.
func Verify(name string, dbPath string) {
	store := openStore(dbPath, false)
	defer store.Close()

	if id, err := store.GetStoreID(); err == nil {
		if cached, err := keyring.GetPassword(id, name); err == nil {
			pw := []byte(cached)
			err := store.Verify(name, pw)
			secmem.ClearBytes(pw)
			if err == nil {
				fmt.Println("✓ Password matches (from keyring)")
				return
			}
		}
	}

	pw := GetPasswordOrExit("Enter password: ")
	defer secmem.ClearBytes(pw)

	if err := store.Verify(name, pw); err != nil {
		HandleError(err)
	}
	fmt.Println("✓ Password matches")
}
