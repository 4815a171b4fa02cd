package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerKV is a KV backed by an embedded Badger database.
type BadgerKV struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger database in the given directory.
func OpenBadger(dir string) (*BadgerKV, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening data store: %w", err)
	}

	return &BadgerKV{db: db}, nil
}

// Get returns the stored value, or ErrKeyNotFound.
func (b *BadgerKV) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, nil
}

// Set stores the value under the key.
func (b *BadgerKV) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (b *BadgerKV) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
