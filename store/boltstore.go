package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/reflink-go/address"
)

var bucketRecords = []byte("records")

// BoltStore keeps records in a bbolt database, one key per address.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: db path", ErrNilParam)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRecords); err != nil {
			return fmt.Errorf("boltstore: create bucket %q: %w", bucketRecords, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Path returns the database file path.
func (s *BoltStore) Path() string { return s.db.Path() }

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Update runs fn inside a bbolt read-write transaction.
func (s *BoltStore) Update(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: update func", ErrNilParam)
	}
	err := s.db.Update(func(btx *bbolt.Tx) error {
		return fn(&boltTx{bucket: btx.Bucket(bucketRecords), writable: true})
	})
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return err
}

// View runs fn inside a bbolt read-only transaction.
func (s *BoltStore) View(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: view func", ErrNilParam)
	}
	err := s.db.View(func(btx *bbolt.Tx) error {
		return fn(&boltTx{bucket: btx.Bucket(bucketRecords)})
	})
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return err
}

type boltTx struct {
	bucket   *bbolt.Bucket
	writable bool
}

func (t *boltTx) Get(addr address.Address) ([]byte, error) {
	v := t.bucket.Get(addr[:])
	if v == nil {
		return nil, ErrKeyNotFound
	}
	// bbolt values are only valid for the life of the transaction.
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (t *boltTx) Has(addr address.Address) (bool, error) {
	return t.bucket.Get(addr[:]) != nil, nil
}

func (t *boltTx) Put(addr address.Address, value []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	if len(value) == 0 {
		return fmt.Errorf("%w: value", ErrNilParam)
	}
	if err := t.bucket.Put(addr[:], value); err != nil {
		return fmt.Errorf("boltstore: put %s: %w", addr, err)
	}
	return nil
}
