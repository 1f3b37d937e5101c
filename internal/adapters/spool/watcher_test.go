package spool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	storebbolt "github.com/corey/stylo/internal/adapters/bbolt"
	"github.com/corey/stylo/internal/adapters/lexical"
	"github.com/corey/stylo/internal/domain/styleprof"
	"github.com/corey/stylo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Spool ingestion — JSON entries folded through the recorder
// Success deletes the file; failure leaves it for resubmission.
// =============================================================================

func newTestWatcher(t *testing.T) (*Watcher, *service.Recorder, string) {
	t.Helper()
	store, err := storebbolt.NewStore(filepath.Join(t.TempDir(), "stylo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rec, err := service.NewRecorder(store, styleprof.DefaultConfig(), nil)
	require.NoError(t, err)

	spoolDir := t.TempDir()
	return NewWatcher(rec, lexical.New(), nil), rec, spoolDir
}

func writeEntry(t *testing.T, dir, name string, entry Entry) string {
	t.Helper()
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func fullMetrics(base float64) map[string]float64 {
	m := map[string]float64{}
	for _, name := range styleprof.MetricNames() {
		m[name] = base
	}
	return m
}

func TestIngestFile_PreExtractedSample(t *testing.T) {
	w, rec, dir := newTestWatcher(t)
	path := writeEntry(t, dir, "alice__001.json", Entry{
		AccountID: "alice@example.com",
		Metrics:   fullMetrics(9),
		Greeting:  "hi",
	})

	require.NoError(t, w.IngestFile(context.Background(), path))

	p, err := rec.GetProfile(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.SampleCount)
	assert.Equal(t, 9.0, p.Metrics[styleprof.MetricJargonRatio].Mean)
	assert.Equal(t, map[string]int{"hi": 1}, p.Greeting.Counts)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "ingested file must be deleted")
}

func TestIngestFile_RawBodyThroughExtractor(t *testing.T) {
	w, rec, dir := newTestWatcher(t)
	path := writeEntry(t, dir, "bob__001.json", Entry{
		AccountID: "bob@example.com",
		Body:      "Hi team,\n\nThe report was sent this morning. Please review it.\n\nBest,\nBob",
	})

	require.NoError(t, w.IngestFile(context.Background(), path))

	p, err := rec.GetProfile(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.SampleCount)
	assert.Equal(t, map[string]int{"hi": 1}, p.Greeting.Counts)
	assert.Equal(t, map[string]int{"best": 1}, p.SignOff.Counts)
	assert.Positive(t, p.Metrics[styleprof.MetricAvgSentenceLen].Mean)
}

func TestIngestFile_InvalidEntryLeavesFile(t *testing.T) {
	w, rec, dir := newTestWatcher(t)

	missing := writeEntry(t, dir, "bad__missing.json", Entry{
		AccountID: "carol",
		Metrics:   map[string]float64{"avg_sentence_len": 4}, // incomplete set
	})
	noAccount := writeEntry(t, dir, "bad__noaccount.json", Entry{Body: "Hello."})

	assert.Error(t, w.IngestFile(context.Background(), missing))
	assert.Error(t, w.IngestFile(context.Background(), noAccount))

	_, err := os.Stat(missing)
	assert.NoError(t, err, "failed file must remain for resubmission")
	_, err = os.Stat(noAccount)
	assert.NoError(t, err)

	p, err := rec.GetProfile(context.Background(), "carol")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestIngestFile_MissingFileIsSkipped(t *testing.T) {
	w, _, dir := newTestWatcher(t)
	assert.NoError(t, w.IngestFile(context.Background(), filepath.Join(dir, "gone.json")))
}

func TestSweep_IngestsBacklogAcrossAccounts(t *testing.T) {
	w, rec, dir := newTestWatcher(t)
	for i, id := range []string{"a@x", "b@x", "c@x"} {
		writeEntry(t, dir, id[:1]+"__0.json", Entry{
			AccountID: id,
			Metrics:   fullMetrics(float64(i + 1)),
		})
	}
	// Corrupt JSON must be skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{nope"), 0600))
	// Non-JSON files are ignored entirely.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0600))

	require.NoError(t, w.Sweep(context.Background(), dir))

	ids, err := rec.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x", "b@x", "c@x"}, ids)

	_, err = os.Stat(filepath.Join(dir, "junk.json"))
	assert.NoError(t, err, "corrupt file stays in the spool")
}

func TestIsSpoolFile(t *testing.T) {
	assert.True(t, isSpoolFile("alice__1.json"))
	assert.False(t, isSpoolFile(".alice__1.json.swp"))
	assert.False(t, isSpoolFile("notes.txt"))
	assert.False(t, isSpoolFile(".hidden.json"))
}
