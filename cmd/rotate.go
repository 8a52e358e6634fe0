package cmd

import (
	"fmt"
	"os"

	"github.com/shirosaki/kdfkit/internal/kdf"
	"github.com/shirosaki/kdfkit/internal/keyring"
	"github.com/shirosaki/kdfkit/internal/password"
	"github.com/shirosaki/kdfkit/internal/secmem"
	"github.com/shirosaki/kdfkit/internal/verifier"
)

// RotateOptions holds the rotate command's flags. Zero values keep
// the record's current parameters.
type RotateOptions struct {
	DBPath     string
	Hash       string
	Iterations int
	Length     int
}

// Rotate changes the password behind a record, re-deriving with a
// fresh salt.
func Rotate(name string, opts RotateOptions) {
	store := openStore(opts.DBPath, false)
	defer store.Close()

	current, err := GetPassword("Enter current password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer secmem.ClearBytes(current)

	next, err := password.ReadConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer secmem.ClearBytes(next)

	record, err := store.Rotate(name, current, next, verifier.Options{
		Hash:       kdf.Hash(opts.Hash),
		Iterations: opts.Iterations,
		Length:     opts.Length,
	})
	if err != nil {
		HandleError(err)
	}

	// Keep any cached keyring entry in sync with the new password.
	if id, err := store.GetStoreID(); err == nil && keyring.HasPassword(id, name) {
		if err := keyring.SavePassword(id, name, string(next)); err == nil {
			fmt.Println("Keyring updated with new password")
		}
	}

	fmt.Printf("✓ Rotated %s (%s, %d iterations, %d bytes)\n",
		record.Name, record.Hash, record.Iterations, record.Length)
}
