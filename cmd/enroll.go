package cmd

import (
	"fmt"
	"os"

	"github.com/shirosaki/kdfkit/internal/kdf"
	"github.com/shirosaki/kdfkit/internal/secmem"
	"github.com/shirosaki/kdfkit/internal/verifier"
)

// EnrollOptions holds the enroll command's flags.
type EnrollOptions struct {
	DBPath     string
	Hash       string
	Iterations int
	Length     int
	SaltLength int
}

// Enroll creates a password-verification record.
func Enroll(name string, opts EnrollOptions) {
	store := openStore(opts.DBPath, true)
	defer store.Close()

	pw, err := GetPasswordConfirmed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer secmem.ClearBytes(pw)

	record, err := store.Enroll(name, pw, verifier.Options{
		Hash:       kdf.Hash(opts.Hash),
		Iterations: opts.Iterations,
		Length:     opts.Length,
		SaltLength: opts.SaltLength,
	})
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Enrolled %s (%s, %d iterations, %d bytes)\n",
		record.Name, record.Hash, record.Iterations, record.Length)
}
