// Package lexical implements the styleprof.Extractor interface with plain
// lexical heuristics: tokenized counts, small word lists, and the Flesch
// reading-ease formula. It exists so the engine runs end to end without an
// external NLP service; any richer extractor can be substituted behind the
// same interface.
package lexical

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/corey/stylo/internal/domain/styleprof"
)

// paragraphRe splits a body into paragraphs on blank lines.
var paragraphRe = regexp.MustCompile(`\n\s*\n`)

// sentenceEndRe splits a paragraph into sentences on terminal punctuation runs.
var sentenceEndRe = regexp.MustCompile(`[.!?]+`)

// Extractor computes the fixed metric set from a raw email body.
type Extractor struct{}

// New creates a lexical extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract produces a Sample from one email body. The body must be non-empty
// after trimming. All returned metric values are finite: every ratio is
// zero-safe against empty denominators.
func (e *Extractor) Extract(ctx context.Context, body string) (styleprof.Sample, error) {
	if err := ctx.Err(); err != nil {
		return styleprof.Sample{}, err
	}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return styleprof.Sample{}, fmt.Errorf("empty email body")
	}

	lower := strings.ToLower(trimmed)
	paragraphs := splitParagraphs(trimmed)
	sentences := splitSentences(trimmed)
	words := splitWords(lower)

	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	paragraphCount := len(paragraphs)
	if paragraphCount == 0 {
		paragraphCount = 1
	}

	var s styleprof.Sample
	m := &s.Metrics

	m.AvgSentenceLen = ratio(len(words), sentenceCount)
	m.AvgWordLen = avgWordLength(words)
	m.AvgParagraphLen = ratio(sentenceCount, paragraphCount)
	m.PassiveVoiceRatio = passiveRatio(sentences)
	m.SentimentScore = sentiment(words)
	m.FormalityScore = formality(words)
	m.ReadabilityFlesch = flesch(words, sentenceCount)
	m.LexicalDiversity = diversity(words)
	m.JargonRatio = lexiconRatio(words, jargonWords)
	m.ExclamationFreq = ratio(strings.Count(trimmed, "!"), sentenceCount)
	m.QuestionFreq = ratio(strings.Count(trimmed, "?"), sentenceCount)
	m.EmojiCount = float64(countEmoji(trimmed))
	m.CTACount = float64(countPhrases(lower, ctaPhrases))
	m.CapitalizationRatio = capitalizationRatio(trimmed)
	m.PunctuationDensity = punctuationDensity(trimmed)
	m.ContractionRatio = contractionRatio(words)
	m.FirstPersonRatio = lexiconRatio(words, firstPersonWords)
	m.HedgeRatio = hedgeRatio(lower, words)
	m.PolitenessScore = clamp01(lexiconCount(words, politeWords), sentenceCount)

	s.Greeting = detectGreeting(trimmed)
	s.SignOff = detectSignOff(trimmed)
	return s, nil
}

// splitParagraphs returns non-empty paragraphs.
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphRe.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences returns non-empty sentence fragments.
func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceEndRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// splitWords tokenizes lowercased text into words, keeping in-word
// apostrophes so contractions survive as single tokens.
func splitWords(lower string) []string {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	var out []string
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0.0
	}
	return float64(num) / float64(den)
}

func avgWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0.0
	}
	var letters int
	for _, w := range words {
		letters += len([]rune(w))
	}
	return float64(letters) / float64(len(words))
}

// passiveRatio is the fraction of sentences containing an auxiliary followed
// by a participle ("was sent", "is being reviewed"). Heuristic, not a parse.
func passiveRatio(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0.0
	}
	passive := 0
	for _, sentence := range sentences {
		if isPassiveSentence(splitWords(strings.ToLower(sentence))) {
			passive++
		}
	}
	return float64(passive) / float64(len(sentences))
}

// isPassiveSentence reports an auxiliary with a participle within the next
// two words ("was sent", "is being reviewed").
func isPassiveSentence(words []string) bool {
	for i, w := range words {
		if !passiveAuxiliaries[w] {
			continue
		}
		for j := i + 1; j < len(words) && j <= i+2; j++ {
			if isParticiple(words[j]) {
				return true
			}
		}
	}
	return false
}

func isParticiple(w string) bool {
	return irregularParticiples[w] || (len(w) > 3 && strings.HasSuffix(w, "ed"))
}

// sentiment scores (pos-neg)/(pos+neg), 0 when neither polarity appears.
func sentiment(words []string) float64 {
	pos := lexiconCount(words, positiveWords)
	neg := lexiconCount(words, negativeWords)
	if pos+neg == 0 {
		return 0.0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// formality starts neutral at 0.5 and shifts with formal vs informal usage.
func formality(words []string) float64 {
	if len(words) == 0 {
		return 0.5
	}
	formal := lexiconCount(words, formalWords)
	informal := lexiconCount(words, informalWords)
	score := 0.5 + 3*float64(formal-informal)/float64(len(words))
	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

// flesch computes the Flesch reading-ease score with vowel-group syllable
// estimation. Higher is easier; typical business email lands 40–70.
func flesch(words []string, sentenceCount int) float64 {
	if len(words) == 0 {
		return 0.0
	}
	var syllables int
	for _, w := range words {
		syllables += countSyllables(w)
	}
	wps := float64(len(words)) / float64(sentenceCount)
	spw := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wps - 84.6*spw
}

// countSyllables estimates syllables as vowel groups, minimum 1.
func countSyllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range word {
		v := strings.ContainsRune("aeiouy", r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	// Trailing silent e.
	if count > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func diversity(words []string) float64 {
	if len(words) == 0 {
		return 0.0
	}
	unique := make(map[string]bool, len(words))
	for _, w := range words {
		unique[w] = true
	}
	return float64(len(unique)) / float64(len(words))
}

func lexiconCount(words []string, lexicon map[string]bool) int {
	n := 0
	for _, w := range words {
		if lexicon[w] {
			n++
		}
	}
	return n
}

func lexiconRatio(words []string, lexicon map[string]bool) float64 {
	return ratio(lexiconCount(words, lexicon), len(words))
}

func countPhrases(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		n += strings.Count(lower, p)
	}
	return n
}

func countEmoji(text string) int {
	n := 0
	for _, r := range text {
		if (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) {
			n++
		}
	}
	return n
}

func capitalizationRatio(text string) float64 {
	var upper, letters int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return ratio(upper, letters)
}

func punctuationDensity(text string) float64 {
	var punct, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			punct++
		}
	}
	return ratio(punct, total)
}

func contractionRatio(words []string) float64 {
	n := 0
	for _, w := range words {
		if strings.Contains(w, "'") {
			n++
		}
	}
	return ratio(n, len(words))
}

func hedgeRatio(lower string, words []string) float64 {
	if len(words) == 0 {
		return 0.0
	}
	hits := lexiconCount(words, hedgeWords) + countPhrases(lower, hedgePhrases)
	return float64(hits) / float64(len(words))
}

func clamp01(hits, sentences int) float64 {
	v := ratio(hits, sentences)
	if v > 1 {
		return 1.0
	}
	return v
}

// detectGreeting matches the first non-empty line against known greeting
// prefixes and returns the normalized phrase ("hi", "dear", "good morning"),
// or "" when the email opens without one.
func detectGreeting(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, phrase := range greetingPhrases {
			if !strings.HasPrefix(lower, phrase) {
				continue
			}
			// The phrase must end at a word boundary: "hi john" and "hey!"
			// match, "higher" must not.
			rest := lower[len(phrase):]
			if rest == "" || !unicode.IsLetter([]rune(rest)[0]) {
				return phrase
			}
		}
		return ""
	}
	return ""
}

// signOffScanLines bounds how far up from the bottom a sign-off is searched.
const signOffScanLines = 6

// detectSignOff matches the trailing lines (typically "phrase," then a name)
// against known sign-off phrases and returns the normalized phrase, or "".
func detectSignOff(text string) string {
	lines := strings.Split(text, "\n")
	scanned := 0
	for i := len(lines) - 1; i >= 0 && scanned < signOffScanLines; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		scanned++
		lower := strings.ToLower(strings.TrimRight(line, ",.!- "))
		if signOffPhrases[lower] {
			return lower
		}
	}
	return ""
}
