//go:build !requirefips

package selftest

import (
	"strings"
	"testing"
)

func TestRunAllPass(t *testing.T) {
	for _, r := range Run() {
		if !r.OK() {
			t.Errorf("%s failed:\n%s", r.Vector.Name, r.Diff())
		}
		if r.OK() && r.Diff() != "" {
			t.Errorf("%s: passing result should have empty diff", r.Vector.Name)
		}
	}
}

func TestDiffOnMismatch(t *testing.T) {
	r := Result{
		Vector: Vector{Name: "fake", Expected: "00ff00"},
		Got:    []byte{0x00, 0xee, 0x00},
	}
	if r.OK() {
		t.Fatal("mismatched result reported OK")
	}
	diff := r.Diff()
	if diff == "" {
		t.Fatal("expected non-empty diff")
	}
	// Both the expected and the actual hex digits should appear.
	if !strings.Contains(diff, "ff") || !strings.Contains(diff, "ee") {
		t.Errorf("diff missing differing digits: %q", diff)
	}
}

func TestDiffOnError(t *testing.T) {
	r := Result{
		Vector: Vector{Name: "fake", Expected: "00"},
		Err:    errFake,
	}
	if r.OK() {
		t.Fatal("errored result reported OK")
	}
	if !strings.Contains(r.Diff(), "fake failure") {
		t.Errorf("diff should mention the error: %q", r.Diff())
	}
}

var errFake = fakeError("fake failure")

type fakeError string

func (e fakeError) Error() string { return string(e) }
