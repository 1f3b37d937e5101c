// Package bbolt implements the ports.Storage interface using bbolt (embedded
// B+ tree). Each account gets its own top-level bucket holding a single
// JSON-serialized profile record. Writes are transactional: a crash mid-write
// cannot corrupt previously committed data, and the whole read-modify-write
// of an update runs inside one exclusive transaction, so two
// near-simultaneous folds for the same account can never both read the same
// prior profile.
package bbolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/corey/stylo/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// keyProfile is the single record key inside each account bucket.
var keyProfile = []byte("profile")

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path, creating
// parent directories as needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("bbolt mkdir: %w", err)
		}
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("bbolt open: %w: %w", ports.ErrTransient, err)
		}
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadProfile retrieves the profile for an account.
// Returns nil, nil if no profile exists (fresh account).
func (s *Store) LoadProfile(accountID string) (*ports.StyleProfile, error) {
	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(accountID))
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get(keyProfile); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt load %q: %w", accountID, err)
	}
	if data == nil {
		return nil, nil
	}

	return decodeProfile(data)
}

// UpdateProfile runs fn inside a single bbolt update transaction: read the
// current profile (nil for a new account), fold, write back. If fn errors the
// transaction rolls back and the prior record stays visible.
func (s *Store) UpdateProfile(accountID string, fn func(prior *ports.StyleProfile) (*ports.StyleProfile, error)) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(accountID))
		if err != nil {
			return err
		}

		var prior *ports.StyleProfile
		if v := b.Get(keyProfile); v != nil {
			prior, err = decodeProfile(v)
			if err != nil {
				return err
			}
		}

		next, err := fn(prior)
		if err != nil {
			return err
		}
		if next == nil {
			return fmt.Errorf("update produced nil profile for %q", accountID)
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		return b.Put(keyProfile, data)
	})
	if errors.Is(err, bolt.ErrTimeout) || errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return fmt.Errorf("bbolt update %q: %w: %w", accountID, ports.ErrTransient, err)
	}
	return err
}

// ListAccounts returns all account IDs with a stored profile, sorted.
func (s *Store) ListAccounts() ([]string, error) {
	var accounts []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			if b.Get(keyProfile) != nil {
				accounts = append(accounts, string(name))
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt list: %w", err)
	}
	sort.Strings(accounts)
	return accounts, nil
}

// DeleteAccount removes the profile bucket for an account.
// Idempotent: deleting a nonexistent account is not an error.
func (s *Store) DeleteAccount(accountID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(accountID))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

// decodeProfile unmarshals a stored record, initializing any nil maps so
// callers never index into nil.
func decodeProfile(data []byte) (*ports.StyleProfile, error) {
	var p ports.StyleProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	if p.Metrics == nil {
		p.Metrics = make(map[string]ports.RunningStat)
	}
	if p.Greeting.Counts == nil {
		p.Greeting.Counts = make(map[string]int)
	}
	if p.SignOff.Counts == nil {
		p.SignOff.Counts = make(map[string]int)
	}
	return &p, nil
}
