// Package ports defines the interfaces (contracts) that adapters must implement,
// plus the persisted record types they exchange. These are the boundaries of
// the hexagonal architecture. Domain logic depends only on these definitions,
// never on concrete implementations.
package ports

import "math"

// Storage persists style profiles to durable storage, keyed by account.
// Each accountID gets its own namespace.
//
// Crash safety: UpdateProfile must be transactional. A crash mid-write must
// not corrupt previously committed data, and a failed update must leave the
// prior profile untouched.
type Storage interface {
	// LoadProfile retrieves the profile for an account.
	// Returns nil, nil if no sample has ever been recorded for this account.
	LoadProfile(accountID string) (*StyleProfile, error)

	// UpdateProfile runs fn inside a single exclusive read-modify-write
	// transaction for accountID. fn receives the current profile (nil if the
	// account is new) and returns the replacement. If fn returns an error the
	// transaction rolls back and nothing is written.
	UpdateProfile(accountID string, fn func(prior *StyleProfile) (*StyleProfile, error)) error

	// ListAccounts returns all account IDs with a stored profile, sorted.
	ListAccounts() ([]string, error)

	// DeleteAccount removes the profile for an account.
	// Idempotent: deleting a nonexistent account is not an error.
	DeleteAccount(accountID string) error

	// Close releases the underlying store.
	Close() error
}

// RunningStat is an online mean/variance accumulator for one numeric metric.
// M2 is the running sum of squared deviations from the mean (Welford's
// algorithm); sample variance is M2/(n-1) where n is the profile's
// SampleCount. Raw observed values are never retained.
type RunningStat struct {
	Mean float64 `json:"mean"`
	M2   float64 `json:"m2"`
}

// CategoryCounter is a bounded frequency table over an open-ended label set.
//
// Total is the all-time number of observations and only ever increases.
// Counts is re-derived after every observation by a pruning policy, so the
// sum of Counts is <= Total once pruning has discarded low-frequency labels.
type CategoryCounter struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// StyleProfile is the full per-account writing-style aggregate. It is the
// entire persisted state for an account: no raw email text or history
// survives a fold.
type StyleProfile struct {
	SampleCount int                    `json:"sample_count"`
	Metrics     map[string]RunningStat `json:"metrics"`
	Greeting    CategoryCounter        `json:"greeting"`
	SignOff     CategoryCounter        `json:"sign_off"`
}

// PGreeting returns the fraction of samples that carried a greeting (0.0–1.0).
func (p *StyleProfile) PGreeting() float64 {
	if p.SampleCount == 0 {
		return 0.0
	}
	return float64(p.Greeting.Total) / float64(p.SampleCount)
}

// PSignOff returns the fraction of samples that carried a sign-off (0.0–1.0).
func (p *StyleProfile) PSignOff() float64 {
	if p.SampleCount == 0 {
		return 0.0
	}
	return float64(p.SignOff.Total) / float64(p.SampleCount)
}

// Variance returns the sample variance of a metric (M2/(n-1)).
// Returns 0 if the metric is unknown or fewer than 2 samples were folded.
func (p *StyleProfile) Variance(metric string) float64 {
	rs, ok := p.Metrics[metric]
	if !ok || p.SampleCount < 2 {
		return 0.0
	}
	return rs.M2 / float64(p.SampleCount-1)
}

// StdDev returns the sample standard deviation of a metric.
func (p *StyleProfile) StdDev(metric string) float64 {
	return math.Sqrt(p.Variance(metric))
}

// TopLabel returns the most frequent retained label and its count.
// Ties break lexicographically. Returns "", 0 for an empty counter.
func (c *CategoryCounter) TopLabel() (string, int) {
	best, bestCount := "", 0
	for label, count := range c.Counts {
		if count > bestCount || (count == bestCount && count > 0 && label < best) {
			best, bestCount = label, count
		}
	}
	return best, bestCount
}
