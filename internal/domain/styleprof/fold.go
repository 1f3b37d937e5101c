package styleprof

import (
	"fmt"

	"github.com/corey/stylo/internal/ports"
)

// Folder folds samples into style profiles under a fixed pruning
// configuration. Folding is pure: no I/O, no shared state, safe to call from
// any goroutine.
type Folder struct {
	cfg Config
}

// NewFolder creates a Folder. Returns an error if the config is invalid.
func NewFolder(cfg Config) (*Folder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("styleprof config: %w", err)
	}
	return &Folder{cfg: cfg}, nil
}

// Config returns the folder's pruning configuration.
func (f *Folder) Config() Config {
	return f.cfg
}

// Fold produces the next profile from the prior one (nil for a brand-new
// account) and one sample. The prior profile is never mutated.
//
// First sample: every metric's RunningStat is seeded from the sample value,
// SampleCount becomes 1, and each categorical counter records one
// observation iff the sample carries that field.
//
// Later samples: every metric updates via Welford with the incremented
// count; present categoricals are observed and pruned; SampleCount always
// increments, with or without greeting/sign-off.
func (f *Folder) Fold(prior *ports.StyleProfile, sample Sample) (*ports.StyleProfile, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	if prior == nil {
		return f.seed(sample), nil
	}

	newCount := prior.SampleCount + 1
	next := &ports.StyleProfile{
		SampleCount: newCount,
		Metrics:     make(map[string]ports.RunningStat, len(metricFields)),
		Greeting:    copyCounter(prior.Greeting),
		SignOff:     copyCounter(prior.SignOff),
	}
	for _, field := range metricFields {
		rs, ok := prior.Metrics[field.name]
		if !ok {
			// A stored profile missing a metric would silently corrupt the
			// running mean from here on; refuse to fold into it.
			return nil, fmt.Errorf("stored profile missing metric %q", field.name)
		}
		next.Metrics[field.name] = UpdateStat(rs, *field.get(&sample.Metrics), newCount)
	}
	if sample.Greeting != "" {
		next.Greeting = observeLabel(prior.Greeting, sample.Greeting, f.cfg)
	}
	if sample.SignOff != "" {
		next.SignOff = observeLabel(prior.SignOff, sample.SignOff, f.cfg)
	}
	return next, nil
}

// seed builds the profile for an account's first-ever sample.
func (f *Folder) seed(sample Sample) *ports.StyleProfile {
	p := &ports.StyleProfile{
		SampleCount: 1,
		Metrics:     make(map[string]ports.RunningStat, len(metricFields)),
		Greeting:    ports.CategoryCounter{Counts: map[string]int{}},
		SignOff:     ports.CategoryCounter{Counts: map[string]int{}},
	}
	for _, field := range metricFields {
		p.Metrics[field.name] = InitStat(*field.get(&sample.Metrics))
	}
	if sample.Greeting != "" {
		p.Greeting = observeLabel(p.Greeting, sample.Greeting, f.cfg)
	}
	if sample.SignOff != "" {
		p.SignOff = observeLabel(p.SignOff, sample.SignOff, f.cfg)
	}
	return p
}

// copyCounter deep-copies a counter so folds never alias prior state.
func copyCounter(c ports.CategoryCounter) ports.CategoryCounter {
	counts := make(map[string]int, len(c.Counts))
	for k, v := range c.Counts {
		counts[k] = v
	}
	return ports.CategoryCounter{Counts: counts, Total: c.Total}
}
