package store

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore persists snapshots in a BadgerDB database on disk.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger database at dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

// Put stores value under key.
func (s *BadgerStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Get returns the value for key, reporting presence via the bool.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Remove deletes the value for key. Idempotent.
func (s *BadgerStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
