package verifier

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/shirosaki/kdfkit/internal/kdf"
	"github.com/shirosaki/kdfkit/internal/secmem"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // Store version, timestamps, store ID - public
	RecordsBucket = []byte("records") // Verification records keyed by name
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigStoreID  = []byte("store_id")
)

var (
	ErrNotInitialized   = errors.New("store not initialized")
	ErrRecordExists     = errors.New("record already exists")
	ErrRecordNotFound   = errors.New("record not found")
	ErrPasswordMismatch = errors.New("password does not match")
)

// Record is a stored password-verification entry. Everything in it is
// safe to store unencrypted: the derived value only helps an attacker
// who is prepared to brute-force the iteration count.
type Record struct {
	Name       string    `json:"name"`
	Hash       kdf.Hash  `json:"hash"`
	Iterations int       `json:"iterations"`
	Length     int       `json:"length"`
	Salt       []byte    `json:"salt"`
	Derived    []byte    `json:"derived"`
	Created    time.Time `json:"created"`
	Modified   time.Time `json:"modified"`
}

// Options selects derivation parameters for new records. Zero values
// fall back to defaults; a zero Length means the digest's output size,
// the conventional choice for stored verifiers.
type Options struct {
	Hash       kdf.Hash
	Iterations int
	Length     int
	SaltLength int
}

// DefaultSaltLength is the salt size for new records.
const DefaultSaltLength = 32

func (o Options) normalize() (Options, error) {
	if o.Hash == "" {
		o.Hash = kdf.DefaultHash
	}
	if err := o.Hash.Validate(); err != nil {
		return o, err
	}
	if o.Iterations == 0 {
		o.Iterations = kdf.DefaultIterations
	}
	if o.Length == 0 {
		size, err := o.Hash.Size()
		if err != nil {
			return o, err
		}
		o.Length = size
	}
	if o.SaltLength <= 0 {
		o.SaltLength = DefaultSaltLength
	}
	return o, nil
}

// Store provides BBolt-based storage for verification records.
type Store struct {
	db *bolt.DB
}

// Open opens or creates a record database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenExisting opens the record database at path without creating it.
// A missing file is reported as ErrNotInitialized, so read-only
// commands never leave an empty database behind.
func OpenExisting(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	return Open(path)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure. Calling it on an already
// initialized store is a no-op.
func (s *Store) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, RecordsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}
		now, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, now); err != nil {
			return err
		}
		return config.Put(ConfigModified, now)
	})
}

// IsInitialized checks if the database has been initialized.
func (s *Store) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// Enroll derives a verification value for password and stores it under
// name. The salt is freshly generated; enrolling an existing name
// fails with ErrRecordExists.
func (s *Store) Enroll(name string, password []byte, opts Options) (*Record, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	salt, err := secmem.GenerateRandom(opts.SaltLength)
	if err != nil {
		return nil, err
	}

	// Derive outside the write transaction; the KDF is deliberately
	// slow and must not hold the database lock.
	derived, err := kdf.Derive(password, kdf.Params{
		Salt:       salt,
		Iterations: opts.Iterations,
		Length:     opts.Length,
		Hash:       opts.Hash,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &Record{
		Name:       name,
		Hash:       opts.Hash,
		Iterations: opts.Iterations,
		Length:     opts.Length,
		Salt:       salt,
		Derived:    derived,
		Created:    now,
		Modified:   now,
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if records == nil {
			return ErrNotInitialized
		}
		if records.Get([]byte(name)) != nil {
			return ErrRecordExists
		}
		return putRecord(tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Verify re-derives with the record's stored parameters and compares
// in constant time. Returns ErrPasswordMismatch when the password is
// wrong and ErrRecordNotFound for unknown names.
func (s *Store) Verify(name string, password []byte) error {
	record, err := s.Get(name)
	if err != nil {
		return err
	}

	derived, err := kdf.Derive(password, kdf.Params{
		Salt:       record.Salt,
		Iterations: record.Iterations,
		Length:     record.Length,
		Hash:       record.Hash,
	})
	if err != nil {
		return err
	}
	defer secmem.ClearBytes(derived)

	if !secmem.ConstantTimeCompare(derived, record.Derived) {
		return ErrPasswordMismatch
	}
	return nil
}

// Rotate replaces the password behind an existing record. The old
// password must verify first; the new value always gets a fresh salt.
// Zero fields in opts keep the record's current parameters.
func (s *Store) Rotate(name string, oldPassword, newPassword []byte, opts Options) (*Record, error) {
	if err := s.Verify(name, oldPassword); err != nil {
		return nil, err
	}

	current, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if opts.Hash == "" {
		opts.Hash = current.Hash
	}
	if opts.Iterations == 0 {
		opts.Iterations = current.Iterations
	}
	if opts.Length == 0 {
		opts.Length = current.Length
	}
	opts, err = opts.normalize()
	if err != nil {
		return nil, err
	}

	salt, err := secmem.GenerateRandom(opts.SaltLength)
	if err != nil {
		return nil, err
	}
	derived, err := kdf.Derive(newPassword, kdf.Params{
		Salt:       salt,
		Iterations: opts.Iterations,
		Length:     opts.Length,
		Hash:       opts.Hash,
	})
	if err != nil {
		return nil, err
	}

	record := &Record{
		Name:       name,
		Hash:       opts.Hash,
		Iterations: opts.Iterations,
		Length:     opts.Length,
		Salt:       salt,
		Derived:    derived,
		Created:    current.Created,
		Modified:   time.Now(),
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return putRecord(tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Get retrieves a single record by name.
func (s *Store) Get(name string) (*Record, error) {
	var record Record
	err := s.db.View(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if records == nil {
			return ErrNotInitialized
		}
		data := records.Get([]byte(name))
		if data == nil {
			return ErrRecordNotFound
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all records sorted by name.
func (s *Store) List() ([]Record, error) {
	var list []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if records == nil {
			return ErrNotInitialized
		}
		// Bolt cursors iterate in key order, so the result is sorted.
		return records.ForEach(func(k, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("corrupt record %q: %w", k, err)
			}
			list = append(list, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Remove deletes a record by name.
func (s *Store) Remove(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if records == nil {
			return ErrNotInitialized
		}
		if records.Get([]byte(name)) == nil {
			return ErrRecordNotFound
		}
		if err := records.Delete([]byte(name)); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// GetStoreID retrieves the store ID used to key keyring entries.
func (s *Store) GetStoreID() (string, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(ConfigStoreID)
		if data == nil {
			return fmt.Errorf("store_id not found")
		}
		id = string(data)
		return nil
	})
	return id, err
}

// GetOrCreateStoreID retrieves the existing store ID or generates one.
func (s *Store) GetOrCreateStoreID() (string, error) {
	id, err := s.GetStoreID()
	if err == nil {
		return id, nil
	}

	b, err := secmem.GenerateRandom(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate store ID: %w", err)
	}
	id = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		return config.Put(ConfigStoreID, []byte(id))
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func putRecord(tx *bolt.Tx, record *Record) error {
	records := tx.Bucket(RecordsBucket)
	if records == nil {
		return ErrNotInitialized
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := records.Put([]byte(record.Name), data); err != nil {
		return err
	}
	return touchModified(tx)
}

func touchModified(tx *bolt.Tx) error {
	config := tx.Bucket(ConfigBucket)
	if config == nil {
		return ErrNotInitialized
	}
	now, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, now)
}
