package lexical

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Lexical extractor — metric heuristics and greeting/sign-off detection
// =============================================================================

func TestExtract_EmptyBodyRejected(t *testing.T) {
	_, err := New().Extract(context.Background(), "   \n\t ")
	assert.Error(t, err)
}

func TestExtract_AllMetricsFinite(t *testing.T) {
	bodies := []string{
		"x",
		"!!!",
		"Hi.\n\nBye.",
		"One two three four five six seven eight nine ten.",
		"🎉🎉🎉",
	}
	for _, body := range bodies {
		s, err := New().Extract(context.Background(), body)
		require.NoError(t, err, "body %q", body)
		assert.NoError(t, s.Validate(), "body %q", body)
	}
}

func TestExtract_SentenceAndWordCounts(t *testing.T) {
	s, err := New().Extract(context.Background(), "One two three. Four five six.")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, s.Metrics.AvgSentenceLen, 1e-9)
	// one(3) two(3) three(5) four(4) five(4) six(3) = 22 letters over 6 words.
	assert.InDelta(t, 22.0/6.0, s.Metrics.AvgWordLen, 1e-9)
}

func TestExtract_QuestionAndExclamationFreq(t *testing.T) {
	s, err := New().Extract(context.Background(), "Really? Yes! Are you sure? Fine.")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Metrics.QuestionFreq, 1e-9)
	assert.InDelta(t, 0.25, s.Metrics.ExclamationFreq, 1e-9)
}

func TestExtract_EmojiCount(t *testing.T) {
	s, err := New().Extract(context.Background(), "Great job 🎉 see you soon ☀️")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Metrics.EmojiCount, 2.0)
}

func TestExtract_PassiveVoice(t *testing.T) {
	active, err := New().Extract(context.Background(), "I sent the report yesterday.")
	require.NoError(t, err)
	passive, err := New().Extract(context.Background(), "The report was sent yesterday.")
	require.NoError(t, err)

	assert.Equal(t, 0.0, active.Metrics.PassiveVoiceRatio)
	assert.Equal(t, 1.0, passive.Metrics.PassiveVoiceRatio)
}

func TestExtract_SentimentPolarity(t *testing.T) {
	up, err := New().Extract(context.Background(), "Great work, this is excellent and I love it.")
	require.NoError(t, err)
	down, err := New().Extract(context.Background(), "Unfortunately there is a problem and the build is broken.")
	require.NoError(t, err)

	assert.Positive(t, up.Metrics.SentimentScore)
	assert.Negative(t, down.Metrics.SentimentScore)
}

func TestExtract_ContractionAndFirstPerson(t *testing.T) {
	s, err := New().Extract(context.Background(), "I'm sure we'll finish my part.")
	require.NoError(t, err)
	assert.Positive(t, s.Metrics.ContractionRatio)
	assert.Positive(t, s.Metrics.FirstPersonRatio)
}

func TestExtract_CTACount(t *testing.T) {
	s, err := New().Extract(context.Background(), "Please review the draft and let me know by Friday.")
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Metrics.CTACount)
}

func TestDetectGreeting(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{"Hi John,\n\nHow are you?", "hi"},
		{"Hello team,\nquick update.", "hello"},
		{"Dear Dr. Smith,\n...", "dear"},
		{"Good morning everyone!\n...", "good morning"},
		{"Hey!", "hey"},
		{"Quick question about the invoice.", ""},
		{"Higher prices announced today.", ""},
	}
	for _, tc := range cases {
		s, err := New().Extract(context.Background(), tc.body)
		require.NoError(t, err)
		assert.Equal(t, tc.want, s.Greeting, "body %q", tc.body)
	}
}

func TestDetectSignOff(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{"Hi,\n\nDone.\n\nBest,\nAlice", "best"},
		{"Update attached.\n\nKind regards,\nBob", "kind regards"},
		{"See you there.\n\nCheers!\nCarol", "cheers"},
		{"All set.\n\nThanks again,\nDan", "thanks again"},
		{"No closing here, just text.", ""},
	}
	for _, tc := range cases {
		s, err := New().Extract(context.Background(), tc.body)
		require.NoError(t, err)
		assert.Equal(t, tc.want, s.SignOff, "body %q", tc.body)
	}
}

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"cat":       1,
		"hello":     2,
		"beautiful": 3,
		"a":         1,
		"rhythm":    1,
	}
	for word, want := range cases {
		assert.Equal(t, want, countSyllables(word), "word %q", word)
	}
}
