// Package service wires the pure fold core to durable storage. Recorder is
// the only component that touches the store: it validates samples, holds a
// per-account lock across the read-modify-write, and retries transient
// storage failures a bounded number of times.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/corey/stylo/internal/domain/styleprof"
	"github.com/corey/stylo/internal/ports"
	"go.uber.org/zap"
)

// ErrEmptyAccountID is returned when a caller passes an empty account ID.
var ErrEmptyAccountID = errors.New("empty account id")

const (
	// maxAttempts bounds retries of a transient storage failure.
	maxAttempts = 3
	// retryBackoff is the base delay between attempts (multiplied by attempt).
	retryBackoff = 50 * time.Millisecond
)

// Recorder applies samples to per-account style profiles.
//
// Concurrency: two RecordSample calls for the same account serialize on a
// per-account mutex; calls for different accounts only contend on the store
// itself. The store additionally runs each read-modify-write in one
// exclusive transaction.
type Recorder struct {
	store  ports.Storage
	folder *styleprof.Folder
	log    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRecorder creates a Recorder with the given pruning configuration.
// logger may be nil, in which case logging is disabled.
func NewRecorder(store ports.Storage, cfg styleprof.Config, logger *zap.Logger) (*Recorder, error) {
	folder, err := styleprof.NewFolder(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		store:  store,
		folder: folder,
		log:    logger,
		locks:  map[string]*sync.Mutex{},
	}, nil
}

// RecordSample folds one sample into the account's profile, creating the
// profile on first use. The sample is validated before the store is touched;
// an invalid sample mutates nothing. Transient storage failures are retried
// with a fresh read each time; exhausting retries surfaces the error so the
// caller can resubmit. Samples are never silently dropped.
func (r *Recorder) RecordSample(ctx context.Context, accountID string, sample styleprof.Sample) error {
	if accountID == "" {
		return ErrEmptyAccountID
	}
	if err := sample.Validate(); err != nil {
		return err
	}

	lock := r.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = r.store.UpdateProfile(accountID, func(prior *ports.StyleProfile) (*ports.StyleProfile, error) {
			return r.folder.Fold(prior, sample)
		})
		if err == nil {
			r.log.Debug("sample folded",
				zap.String("account", accountID),
				zap.Int("attempt", attempt))
			return nil
		}
		if !errors.Is(err, ports.ErrTransient) {
			return err
		}

		r.log.Warn("transient storage failure, retrying",
			zap.String("account", accountID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("record sample for %q: retries exhausted: %w", accountID, err)
}

// GetProfile returns the current aggregate for an account, or nil if no
// sample has ever been recorded for it.
func (r *Recorder) GetProfile(ctx context.Context, accountID string) (*ports.StyleProfile, error) {
	if accountID == "" {
		return nil, ErrEmptyAccountID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.store.LoadProfile(accountID)
}

// DeleteAccount removes an account's profile. Idempotent.
func (r *Recorder) DeleteAccount(ctx context.Context, accountID string) error {
	if accountID == "" {
		return ErrEmptyAccountID
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	lock := r.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()
	return r.store.DeleteAccount(accountID)
}

// Accounts lists all account IDs with a stored profile, sorted.
func (r *Recorder) Accounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.store.ListAccounts()
}

// Config returns the active pruning configuration.
func (r *Recorder) Config() styleprof.Config {
	return r.folder.Config()
}

// accountLock returns the mutex for an account, creating it on first use.
// Locks are never removed; the map is bounded by the number of live accounts.
func (r *Recorder) accountLock(accountID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[accountID] = lock
	}
	return lock
}
