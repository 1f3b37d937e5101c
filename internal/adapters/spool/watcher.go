// Package spool ingests extracted email samples dropped into a spool
// directory as JSON files. Each file holds one entry: either a pre-extracted
// sample (metrics + optional greeting/sign-off) or a raw body to run through
// the extractor. Files are deleted after a successful fold and left in place
// on failure so the producer can resubmit.
package spool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corey/stylo/internal/domain/styleprof"
	"github.com/corey/stylo/internal/service"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// settleDelay lets the producer finish writing before a file is read
	// (writers often trigger several events per file).
	settleDelay = 100 * time.Millisecond

	// maxConcurrentIngests bounds parallel folds across accounts.
	maxConcurrentIngests = 4
)

// Entry is the JSON shape of one spool file. Metrics wins over Body when
// both are present.
type Entry struct {
	AccountID string             `json:"account_id"`
	Body      string             `json:"body,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Greeting  string             `json:"greeting,omitempty"`
	SignOff   string             `json:"sign_off,omitempty"`
}

// Watcher tails a spool directory and records every dropped sample.
type Watcher struct {
	rec *service.Recorder
	ext styleprof.Extractor
	log *zap.Logger
}

// NewWatcher creates a spool watcher. extractor is only needed for entries
// carrying a raw body; logger may be nil.
func NewWatcher(rec *service.Recorder, extractor styleprof.Extractor, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{rec: rec, ext: extractor, log: logger}
}

// Run ingests everything already in dir, then watches for new files until
// ctx is cancelled. A bad file is logged and left in place; it never stops
// the watcher.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("spool mkdir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("spool watch: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("spool watch %q: %w", dir, err)
	}

	if err := w.Sweep(ctx, dir); err != nil {
		return err
	}

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentIngests)
	defer g.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			if !isSpoolFile(path) {
				continue
			}
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(settleDelay):
				}
				if err := w.IngestFile(ctx, path); err != nil {
					w.log.Warn("spool ingest failed",
						zap.String("file", filepath.Base(path)),
						zap.Error(err))
				}
				return nil
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("spool watcher error", zap.Error(err))
		}
	}
}

// Sweep ingests every spool file already present in dir, concurrently across
// files. Per-file failures are logged, not returned; only a directory read
// failure aborts.
func (w *Watcher) Sweep(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("spool read dir: %w", err)
	}

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentIngests)
	for _, de := range entries {
		if de.IsDir() || !isSpoolFile(de.Name()) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		g.Go(func() error {
			if err := w.IngestFile(ctx, path); err != nil {
				w.log.Warn("spool ingest failed",
					zap.String("file", filepath.Base(path)),
					zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

// IngestFile records one spool file and deletes it on success. A file that
// vanished (picked up by a concurrent event) is silently skipped.
func (w *Watcher) IngestFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("parse entry: %w", err)
	}
	if entry.AccountID == "" {
		return fmt.Errorf("entry missing account_id")
	}

	sample, err := w.buildSample(ctx, entry)
	if err != nil {
		return err
	}
	if err := w.rec.RecordSample(ctx, entry.AccountID, sample); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove ingested file: %w", err)
	}
	w.log.Debug("spool file ingested",
		zap.String("file", filepath.Base(path)),
		zap.String("account", entry.AccountID))
	return nil
}

// buildSample turns an entry into a Sample: pre-extracted metrics directly,
// otherwise the raw body through the extractor.
func (w *Watcher) buildSample(ctx context.Context, entry Entry) (styleprof.Sample, error) {
	if entry.Metrics != nil {
		m, err := styleprof.MetricVectorFromMap(entry.Metrics)
		if err != nil {
			return styleprof.Sample{}, err
		}
		return styleprof.Sample{Metrics: m, Greeting: entry.Greeting, SignOff: entry.SignOff}, nil
	}
	if entry.Body == "" {
		return styleprof.Sample{}, fmt.Errorf("entry has neither metrics nor body")
	}
	if w.ext == nil {
		return styleprof.Sample{}, fmt.Errorf("no extractor configured for raw bodies")
	}
	sample, err := w.ext.Extract(ctx, entry.Body)
	if err != nil {
		return styleprof.Sample{}, fmt.Errorf("extract: %w", err)
	}
	// A greeting or sign-off supplied by the producer overrides detection.
	if entry.Greeting != "" {
		sample.Greeting = entry.Greeting
	}
	if entry.SignOff != "" {
		sample.SignOff = entry.SignOff
	}
	return sample, nil
}

// isSpoolFile accepts only .json files; editors' temp files are skipped.
func isSpoolFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".json") && !strings.HasPrefix(base, ".")
}
