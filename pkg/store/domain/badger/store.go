// Package badger persists domain snapshots in BadgerDB.
//
// Each domain is stored as a single JSON-encoded snapshot under a prefixed
// key. Snapshots are small (principals and ACLs, no file content), so
// whole-value writes keep save and load atomic without a migration layer.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/permdeck/permdeck/pkg/domain"
)

// ErrDomainNotFound indicates no snapshot exists under the requested name.
var ErrDomainNotFound = errors.New("domain not found")

// prefixDomain namespaces snapshot keys: "d:<name>".
const prefixDomain = "d:"

func keyDomain(name string) []byte {
	return []byte(prefixDomain + name)
}

// Store is a BadgerDB-backed snapshot store.
//
// Thread Safety: safe for concurrent use; BadgerDB serializes conflicting
// transactions internally.
type Store struct {
	db *badger.DB
}

// New opens (creating if needed) a store at the given directory.
func New(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// NewInMemory opens an ephemeral store backed by memory only. Used by
// tests and by servers that persist nothing between runs.
func NewInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes a snapshot, replacing any previous snapshot of the same
// domain.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil || snap.Name == "" {
		return fmt.Errorf("snapshot requires a domain name")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snap.Name, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(keyDomain(snap.Name), data); err != nil {
			return fmt.Errorf("failed to store snapshot %s: %w", snap.Name, err)
		}
		return nil
	})
}

// Load reads the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap *domain.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyDomain(name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrDomainNotFound, name)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var decoded domain.Snapshot
			if err := json.Unmarshal(val, &decoded); err != nil {
				return fmt.Errorf("failed to decode snapshot %s: %w", name, err)
			}
			snap = &decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// List returns the names of all stored domains.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixDomain)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			names = append(names, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	return names, nil
}

// Delete removes a stored snapshot. Deleting a missing domain is an error
// so callers can distinguish it from a successful removal.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(keyDomain(name)); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrDomainNotFound, name)
		} else if err != nil {
			return err
		}
		return txn.Delete(keyDomain(name))
	})
}
