package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirosaki/kdfkit/internal/kdf"
	"github.com/shirosaki/kdfkit/internal/password"
	"github.com/shirosaki/kdfkit/internal/verifier"
)

// DefaultDBPath returns the record database path: $KDFKIT_DB if set,
// otherwise ~/.kdfkit.db.
func DefaultDBPath() string {
	if path := os.Getenv("KDFKIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kdfkit.db"
	}
	return filepath.Join(home, ".kdfkit.db")
}

// GetPassword retrieves the password from the environment or prompts.
// The caller is responsible for clearing the returned bytes.
func GetPassword(prompt string) ([]byte, error) {
	if pw := password.FromEnv(); pw != nil {
		return pw, nil
	}

	pw, err := password.Read(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return pw, nil
}

// GetPasswordOrExit is like GetPassword but exits on error.
func GetPasswordOrExit(prompt string) []byte {
	pw, err := GetPassword(prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return pw
}

// GetPasswordConfirmed retrieves a new password: environment variable
// first, otherwise a double prompt with confirmation.
func GetPasswordConfirmed() ([]byte, error) {
	if pw := password.FromEnv(); pw != nil {
		return pw, nil
	}
	return password.ReadConfirm()
}

// openStore opens the record database, optionally creating its bucket
// structure, and exits with a message on failure. Non-initializing
// opens refuse to create the file, so a mistyped -db path does not
// leave an empty database behind.
func openStore(dbPath string, initialize bool) *verifier.Store {
	if !initialize {
		store, err := verifier.OpenExisting(dbPath)
		if err != nil {
			HandleError(err)
		}
		return store
	}

	store, err := verifier.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if err := store.Initialize(); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return store
}

// HandleError prints a user-facing message for err and exits.
func HandleError(err error) {
	switch {
	case errors.Is(err, verifier.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: no record database\n")
		fmt.Fprintf(os.Stderr, "Run 'kdfkit enroll <name>' to create one\n")
	case errors.Is(err, verifier.ErrRecordNotFound):
		fmt.Fprintf(os.Stderr, "Error: no such record\n")
		fmt.Fprintf(os.Stderr, "Use 'kdfkit ls' to see enrolled records\n")
	case errors.Is(err, verifier.ErrRecordExists):
		fmt.Fprintf(os.Stderr, "Error: record already exists\n")
		fmt.Fprintf(os.Stderr, "Use 'kdfkit rotate' to change its password\n")
	case errors.Is(err, verifier.ErrPasswordMismatch):
		fmt.Fprintf(os.Stderr, "Error: password does not match\n")
	case errors.Is(err, kdf.ErrUnknownDigest):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Known digests: %s\n", digestNames())
	case errors.Is(err, kdf.ErrInvalidIterations):
		fmt.Fprintf(os.Stderr, "Error: iterations must be a positive number\n")
	case errors.Is(err, kdf.ErrLengthOutOfRange):
		fmt.Fprintf(os.Stderr, "Error: requested key length is out of range\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

func digestNames() string {
	names := kdf.Digests()
	parts := make([]string, len(names))
	for i, h := range names {
		parts[i] = string(h)
	}
	return strings.Join(parts, ", ")
}
