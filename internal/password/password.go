// Package password reads passwords from the terminal or environment.
package password

import (
	"fmt"
	"os"
	"syscall"

	"github.com/shirosaki/kdfkit/internal/secmem"
	"golang.org/x/term"
)

// EnvVar is checked before prompting, so scripts can supply the
// password non-interactively.
const EnvVar = "KDFKIT_PASSWORD"

// Read reads a password from the terminal without echoing.
func Read(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return pw, nil
}

// ReadConfirm reads a password twice and ensures both entries match.
func ReadConfirm() ([]byte, error) {
	first, err := Read("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer secmem.ClearBytes(first)

	second, err := Read("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer secmem.ClearBytes(second)

	if !secmem.ConstantTimeCompare(first, second) {
		return nil, fmt.Errorf("passwords do not match")
	}

	result := make([]byte, len(first))
	copy(result, first)
	return result, nil
}

// FromEnv returns the password from KDFKIT_PASSWORD, or nil when unset.
func FromEnv() []byte {
	pw := os.Getenv(EnvVar)
	if pw == "" {
		return nil
	}
	// Copy so callers can safely clear the returned bytes.
	result := make([]byte, len(pw))
	copy(result, pw)
	return result
}
