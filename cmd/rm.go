package cmd

import (
	"fmt"
	"os"

	"github.com/shirosaki/kdfkit/internal/keyring"
)

// Remove deletes records from the database, along with any cached
// keyring passwords.
func Remove(dbPath string, names []string) {
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one record name\n")
		fmt.Fprintf(os.Stderr, "Usage: kdfkit rm <name> [name...]\n")
		os.Exit(1)
	}

	store := openStore(dbPath, false)
	defer store.Close()

	storeID, _ := store.GetStoreID()

	for _, name := range names {
		if err := store.Remove(name); err != nil {
			HandleError(err)
		}
		if storeID != "" {
			// Best effort; the keyring may not hold this record.
			_ = keyring.DeletePassword(storeID, name)
		}
		fmt.Printf("✓ Removed %s\n", name)
	}
}
