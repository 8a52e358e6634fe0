package cmd

import (
	"fmt"
	"os"

	"github.com/shirosaki/kdfkit/internal/selftest"
)

// SelfTest runs the published PBKDF2 test vectors against the
// derivation core and reports any mismatch.
func SelfTest() {
	failed := 0
	for _, r := range selftest.Run() {
		if r.OK() {
			fmt.Printf("PASS %s\n", r.Vector.Name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", r.Vector.Name)
		fmt.Printf("     %s\n", r.Diff())
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d vectors failed\n", failed, len(selftest.Vectors))
		os.Exit(1)
	}
	fmt.Printf("All %d vectors passed\n", len(selftest.Vectors))
}
