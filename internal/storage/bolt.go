package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const boltLockTimeout = 2 * time.Second

// BoltBackend stores each namespace as a bbolt bucket.
// The database is opened for each Get and Put, so a long test run does not
// keep other phprun processes out of the file.
type BoltBackend struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// OpenBolt creates the bbolt database at path if needed and checks it can be opened
func OpenBolt(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	b := &BoltBackend{path: path}
	db, err := b.open()
	if err != nil {
		return nil, err
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("close bolt store %s: %w", path, err)
	}
	return b, nil
}

// open fails after a short wait when another process holds the file
func (b *BoltBackend) open() (*bolt.DB, error) {
	db, err := bolt.Open(b.path, 0600, &bolt.Options{Timeout: boltLockTimeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt store %s: %w", b.path, err)
	}
	return db, nil
}

// Get reads key from the namespace bucket
func (b *BoltBackend) Get(namespace, key string) ([]byte, bool, error) {
	var value []byte
	err := b.with(func(db *bolt.DB) error {
		return db.View(func(tx *bolt.Tx) error {
			bucket := tx.Bucket([]byte(namespace))
			if bucket == nil {
				return nil
			}
			if v := bucket.Get([]byte(key)); v != nil {
				// v is only valid inside the transaction
				value = append([]byte{}, v...)
			}
			return nil
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("read %s/%s: %w", namespace, key, err)
	}
	return value, value != nil, nil
}

// Put writes key into the namespace bucket, creating the bucket if needed
func (b *BoltBackend) Put(namespace, key string, value []byte) error {
	err := b.with(func(db *bolt.DB) error {
		return db.Update(func(tx *bolt.Tx) error {
			bucket, err := tx.CreateBucketIfNotExists([]byte(namespace))
			if err != nil {
				return err
			}
			return bucket.Put([]byte(key), value)
		})
	})
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Close makes later calls fail with ErrClosed
func (b *BoltBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *BoltBackend) with(fn func(db *bolt.DB) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	db, err := b.open()
	if err != nil {
		return err
	}
	if err := fn(db); err != nil {
		db.Close()
		return err
	}
	return db.Close()
}
