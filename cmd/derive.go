package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/shirosaki/kdfkit/internal/kdf"
	"github.com/shirosaki/kdfkit/internal/secmem"
)

// DeriveOptions holds the derive command's flags.
type DeriveOptions struct {
	SaltHex    string
	Iterations int
	Length     int
	Hash       string
	Format     string
}

// Derive computes a PBKDF2-HMAC key and writes it to stdout.
func Derive(opts DeriveOptions) {
	salt, err := hex.DecodeString(opts.SaltHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: salt must be hex encoded: %s\n", err)
		os.Exit(1)
	}

	pw := GetPasswordOrExit("Enter password: ")
	defer secmem.ClearBytes(pw)

	key, err := kdf.Derive(pw, kdf.Params{
		Salt:       salt,
		Iterations: opts.Iterations,
		Length:     opts.Length,
		Hash:       kdf.Hash(opts.Hash),
	})
	if err != nil {
		HandleError(err)
	}
	defer secmem.ClearBytes(key)

	switch opts.Format {
	case "hex":
		fmt.Println(hex.EncodeToString(key))
	case "base64":
		fmt.Println(base64.StdEncoding.EncodeToString(key))
	case "raw":
		os.Stdout.Write(key)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (hex, base64 or raw)\n", opts.Format)
		os.Exit(1)
	}
}
