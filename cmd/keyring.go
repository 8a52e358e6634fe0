package cmd

import (
	"fmt"
	"os"

	"github.com/shirosaki/kdfkit/internal/keyring"
	"github.com/shirosaki/kdfkit/internal/password"
	"github.com/shirosaki/kdfkit/internal/secmem"
)

// KeyringSave verifies a record's password and caches it in the OS
// keyring.
func KeyringSave(dbPath, name string) {
	store := openStore(dbPath, false)
	defer store.Close()

	pw, err := password.Read("Enter password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer secmem.ClearBytes(pw)

	// Never cache a password that does not verify.
	if err := store.Verify(name, pw); err != nil {
		HandleError(err)
	}

	storeID, err := store.GetOrCreateStoreID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassword(storeID, name, string(pw)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringForget removes a record's password from the OS keyring.
func KeyringForget(dbPath, name string) {
	store := openStore(dbPath, false)
	defer store.Close()

	storeID, err := store.GetStoreID()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: no keyring entries for this database\n")
		os.Exit(1)
	}

	if err := keyring.DeletePassword(storeID, name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to remove from keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password removed from keyring")
}
