// Package styleprof implements the incremental writing-style aggregation core.
// It folds per-email feature samples into a per-account StyleProfile one at a
// time: online mean/variance per numeric metric (Welford), bounded frequency
// tables for greeting and sign-off phrases, and derived habit probabilities.
// All operations are pure; persistence and locking live in the adapters and
// the service layer.
package styleprof

import (
	"fmt"
	"math"
	"sort"
)

// Metric names, one per field of MetricVector. The set is fixed: every sample
// must carry every metric, and the persisted profile keys its RunningStats by
// these names.
const (
	MetricAvgSentenceLen      = "avg_sentence_len"
	MetricAvgWordLen          = "avg_word_len"
	MetricAvgParagraphLen     = "avg_paragraph_len"
	MetricPassiveVoiceRatio   = "passive_voice_ratio"
	MetricSentimentScore      = "sentiment_score"
	MetricFormalityScore      = "formality_score"
	MetricReadabilityFlesch   = "readability_flesch"
	MetricLexicalDiversity    = "lexical_diversity"
	MetricJargonRatio         = "jargon_ratio"
	MetricExclamationFreq     = "exclamation_freq"
	MetricQuestionFreq        = "question_freq"
	MetricEmojiCount          = "emoji_count"
	MetricCTACount            = "cta_count"
	MetricCapitalizationRatio = "capitalization_ratio"
	MetricPunctuationDensity  = "punctuation_density"
	MetricContractionRatio    = "contraction_ratio"
	MetricFirstPersonRatio    = "first_person_ratio"
	MetricHedgeRatio          = "hedge_ratio"
	MetricPolitenessScore     = "politeness_score"
)

// MetricVector holds one extracted value for every metric in the fixed set.
// A fixed struct rather than an open map: a missing metric is a compile-time
// error for Go callers and a validation error on the map-decoding path,
// never a silent zero that corrupts the running mean.
type MetricVector struct {
	AvgSentenceLen      float64 `json:"avg_sentence_len"`
	AvgWordLen          float64 `json:"avg_word_len"`
	AvgParagraphLen     float64 `json:"avg_paragraph_len"`
	PassiveVoiceRatio   float64 `json:"passive_voice_ratio"`
	SentimentScore      float64 `json:"sentiment_score"`
	FormalityScore      float64 `json:"formality_score"`
	ReadabilityFlesch   float64 `json:"readability_flesch"`
	LexicalDiversity    float64 `json:"lexical_diversity"`
	JargonRatio         float64 `json:"jargon_ratio"`
	ExclamationFreq     float64 `json:"exclamation_freq"`
	QuestionFreq        float64 `json:"question_freq"`
	EmojiCount          float64 `json:"emoji_count"`
	CTACount            float64 `json:"cta_count"`
	CapitalizationRatio float64 `json:"capitalization_ratio"`
	PunctuationDensity  float64 `json:"punctuation_density"`
	ContractionRatio    float64 `json:"contraction_ratio"`
	FirstPersonRatio    float64 `json:"first_person_ratio"`
	HedgeRatio          float64 `json:"hedge_ratio"`
	PolitenessScore     float64 `json:"politeness_score"`
}

// metricFields maps each metric name to its MetricVector field.
// Iteration order is the declaration order above.
var metricFields = []struct {
	name string
	get  func(*MetricVector) *float64
}{
	{MetricAvgSentenceLen, func(m *MetricVector) *float64 { return &m.AvgSentenceLen }},
	{MetricAvgWordLen, func(m *MetricVector) *float64 { return &m.AvgWordLen }},
	{MetricAvgParagraphLen, func(m *MetricVector) *float64 { return &m.AvgParagraphLen }},
	{MetricPassiveVoiceRatio, func(m *MetricVector) *float64 { return &m.PassiveVoiceRatio }},
	{MetricSentimentScore, func(m *MetricVector) *float64 { return &m.SentimentScore }},
	{MetricFormalityScore, func(m *MetricVector) *float64 { return &m.FormalityScore }},
	{MetricReadabilityFlesch, func(m *MetricVector) *float64 { return &m.ReadabilityFlesch }},
	{MetricLexicalDiversity, func(m *MetricVector) *float64 { return &m.LexicalDiversity }},
	{MetricJargonRatio, func(m *MetricVector) *float64 { return &m.JargonRatio }},
	{MetricExclamationFreq, func(m *MetricVector) *float64 { return &m.ExclamationFreq }},
	{MetricQuestionFreq, func(m *MetricVector) *float64 { return &m.QuestionFreq }},
	{MetricEmojiCount, func(m *MetricVector) *float64 { return &m.EmojiCount }},
	{MetricCTACount, func(m *MetricVector) *float64 { return &m.CTACount }},
	{MetricCapitalizationRatio, func(m *MetricVector) *float64 { return &m.CapitalizationRatio }},
	{MetricPunctuationDensity, func(m *MetricVector) *float64 { return &m.PunctuationDensity }},
	{MetricContractionRatio, func(m *MetricVector) *float64 { return &m.ContractionRatio }},
	{MetricFirstPersonRatio, func(m *MetricVector) *float64 { return &m.FirstPersonRatio }},
	{MetricHedgeRatio, func(m *MetricVector) *float64 { return &m.HedgeRatio }},
	{MetricPolitenessScore, func(m *MetricVector) *float64 { return &m.PolitenessScore }},
}

// MetricNames returns the fixed metric name set in declaration order.
func MetricNames() []string {
	names := make([]string, len(metricFields))
	for i, f := range metricFields {
		names[i] = f.name
	}
	return names
}

// MetricCount is the size of the fixed metric set.
func MetricCount() int {
	return len(metricFields)
}

// Map returns the vector as a name→value map (for serialization and display).
func (m *MetricVector) Map() map[string]float64 {
	out := make(map[string]float64, len(metricFields))
	for _, f := range metricFields {
		out[f.name] = *f.get(m)
	}
	return out
}

// MetricVectorFromMap builds a MetricVector from a name→value map, failing
// fast on missing or unknown keys. Used when decoding spool files and other
// externally produced samples.
func MetricVectorFromMap(values map[string]float64) (MetricVector, error) {
	var m MetricVector
	if len(values) != len(metricFields) {
		return m, fmt.Errorf("%w: got %d metrics, want %d", ErrInvalidSample, len(values), len(metricFields))
	}
	for _, f := range metricFields {
		v, ok := values[f.name]
		if !ok {
			return m, fmt.Errorf("%w: missing metric %q", ErrInvalidSample, f.name)
		}
		*f.get(&m) = v
	}
	return m, nil
}

// Sample is one email's extracted feature vector: the fixed numeric metrics
// plus optional normalized greeting and sign-off phrases. Samples are
// ephemeral; they are consumed by one fold and discarded.
type Sample struct {
	Metrics  MetricVector `json:"metrics"`
	Greeting string       `json:"greeting,omitempty"`
	SignOff  string       `json:"sign_off,omitempty"`
}

// Validate checks that every metric value is finite. Non-finite values would
// permanently poison the running mean, so they are rejected before any store
// interaction.
func (s *Sample) Validate() error {
	var bad []string
	for _, f := range metricFields {
		v := *f.get(&s.Metrics)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, f.name)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("%w: non-finite metrics %v", ErrInvalidSample, bad)
	}
	return nil
}
