package verifier

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shirosaki/kdfkit/internal/kdf"
)

// Fast parameters for tests; production defaults would dominate the
// test runtime.
var testOptions = Options{
	Hash:       kdf.SHA256,
	Iterations: 10,
	Length:     32,
	SaltLength: 16,
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	return store
}

func TestOpenExistingMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	store, err := OpenExisting(path)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if store != nil {
		store.Close()
		t.Fatal("expected nil store for missing database")
	}

	// The failed open must not create the file.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("OpenExisting created %s", path)
	}
}

func TestOpenExistingPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	if _, err := store.Enroll("alice", []byte("correct horse"), testOptions); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	store.Close()

	reopened, err := OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting failed: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.Get("alice"); err != nil {
		t.Errorf("Get after reopen failed: %v", err)
	}
}

func TestInitialize(t *testing.T) {
	store := openTestStore(t)

	initialized, err := store.IsInitialized()
	if err != nil {
		t.Fatalf("IsInitialized failed: %v", err)
	}
	if !initialized {
		t.Error("store should be initialized")
	}

	// Initialize must be idempotent.
	if err := store.Initialize(); err != nil {
		t.Errorf("second Initialize failed: %v", err)
	}
}

func TestEnrollAndVerify(t *testing.T) {
	store := openTestStore(t)

	record, err := store.Enroll("alice", []byte("correct horse"), testOptions)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if record.Length != 32 || len(record.Derived) != 32 {
		t.Errorf("expected 32-byte derived value, got %d", len(record.Derived))
	}
	if len(record.Salt) != 16 {
		t.Errorf("expected 16-byte salt, got %d", len(record.Salt))
	}

	if err := store.Verify("alice", []byte("correct horse")); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := store.Verify("alice", []byte("battery staple")); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := store.Verify("bob", []byte("correct horse")); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestEnrollDuplicate(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Enroll("alice", []byte("pw"), testOptions); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if _, err := store.Enroll("alice", []byte("pw"), testOptions); !errors.Is(err, ErrRecordExists) {
		t.Errorf("expected ErrRecordExists, got %v", err)
	}
}

func TestEnrollUniqueSalts(t *testing.T) {
	store := openTestStore(t)

	a, err := store.Enroll("a", []byte("pw"), testOptions)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	b, err := store.Enroll("b", []byte("pw"), testOptions)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if string(a.Salt) == string(b.Salt) {
		t.Error("two enrollments got the same salt")
	}
	if string(a.Derived) == string(b.Derived) {
		t.Error("same password with different salts derived the same value")
	}
}

func TestEnrollDefaults(t *testing.T) {
	store := openTestStore(t)

	record, err := store.Enroll("alice", []byte("pw"), Options{Iterations: 10})
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if record.Hash != kdf.DefaultHash {
		t.Errorf("expected default hash, got %q", record.Hash)
	}
	// Zero length means the digest output size.
	if record.Length != 32 {
		t.Errorf("expected 32-byte default length for sha256, got %d", record.Length)
	}
	if len(record.Salt) != DefaultSaltLength {
		t.Errorf("expected %d-byte default salt, got %d", DefaultSaltLength, len(record.Salt))
	}
}

func TestEnrollUnknownDigest(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Enroll("alice", []byte("pw"), Options{Hash: "not-a-real-hash"})
	if !errors.Is(err, kdf.ErrUnknownDigest) {
		t.Errorf("expected ErrUnknownDigest, got %v", err)
	}
}

func TestRotate(t *testing.T) {
	store := openTestStore(t)

	original, err := store.Enroll("alice", []byte("old"), testOptions)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	// Wrong old password must not rotate.
	if _, err := store.Rotate("alice", []byte("wrong"), []byte("new"), Options{}); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	rotated, err := store.Rotate("alice", []byte("old"), []byte("new"), Options{SaltLength: 16})
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if string(rotated.Salt) == string(original.Salt) {
		t.Error("rotation reused the old salt")
	}
	if rotated.Iterations != original.Iterations || rotated.Hash != original.Hash {
		t.Error("rotation changed parameters it should have kept")
	}
	if !rotated.Created.Equal(original.Created) {
		t.Error("rotation changed the creation time")
	}

	if err := store.Verify("alice", []byte("new")); err != nil {
		t.Errorf("new password rejected after rotation: %v", err)
	}
	if err := store.Verify("alice", []byte("old")); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("old password still accepted after rotation: %v", err)
	}
}

func TestListAndRemove(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"charlie", "alice", "bob"} {
		if _, err := store.Enroll(name, []byte("pw"), testOptions); err != nil {
			t.Fatalf("Enroll %s failed: %v", name, err)
		}
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	// Cursor order is lexicographic.
	if list[0].Name != "alice" || list[1].Name != "bob" || list[2].Name != "charlie" {
		t.Errorf("records not sorted by name: %v %v %v", list[0].Name, list[1].Name, list[2].Name)
	}

	if err := store.Remove("bob"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := store.Remove("bob"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}

	list, err = store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 records after remove, got %d", len(list))
	}
}

func TestStoreID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.GetStoreID(); err == nil {
		t.Error("expected error before store ID creation")
	}

	id, err := store.GetOrCreateStoreID()
	if err != nil {
		t.Fatalf("GetOrCreateStoreID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(id))
	}

	again, err := store.GetOrCreateStoreID()
	if err != nil {
		t.Fatalf("GetOrCreateStoreID failed: %v", err)
	}
	if again != id {
		t.Error("store ID changed between calls")
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	if _, err := store.Enroll("alice", []byte("pw"), testOptions); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	if err := reopened.Verify("alice", []byte("pw")); err != nil {
		t.Errorf("record did not survive reopen: %v", err)
	}
}
