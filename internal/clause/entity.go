package clause

import (
	"regexp"
)

// EntityKind is a coarse entity category the recognizer can label.
type EntityKind string

const (
	EntityMoney EntityKind = "money"
	EntityDate  EntityKind = "date"
	EntityTime  EntityKind = "time"
)

// Span is a labeled region of a sentence.
type Span struct {
	Text  string
	Start int
	End   int
	Kind  EntityKind
}

// Recognizer locates coarse entities within a single sentence. It is an
// optional capability: the extractor falls back to pure pattern matching when
// no recognizer is configured or a call returns nothing.
type Recognizer interface {
	Recognize(sentence string) []Span
}

var entityPatterns = []struct {
	kind EntityKind
	re   *regexp.Regexp
}{
	{EntityMoney, regexp.MustCompile(`(?i)[$€£]\s?\d[\d,]*(?:\.\d+)?\s*k?|\b\d+(?:\.\d+)?\s*k\b|\b\d{1,3}(?:,\d{3})+(?:\.\d+)?\b`)},
	{EntityTime, regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b|\b\d{1,2}:\d{2}\b|\bmidnight\b|\bnoon\b`)},
	{EntityDate, regexp.MustCompile(`(?i)\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`)},
}

// RegexRecognizer is the built-in recognizer. It labels money, time and date
// entities with plain regular expressions and keeps the extractor functional
// when no external NLP capability is wired in.
type RegexRecognizer struct{}

// NewRegexRecognizer creates the built-in regex-backed recognizer.
func NewRegexRecognizer() *RegexRecognizer {
	return &RegexRecognizer{}
}

// Recognize returns all entity spans found in the sentence, in match order per
// entity kind.
func (r *RegexRecognizer) Recognize(sentence string) []Span {
	var spans []Span

	for _, ep := range entityPatterns {
		for _, loc := range ep.re.FindAllStringIndex(sentence, -1) {
			spans = append(spans, Span{
				Text:  sentence[loc[0]:loc[1]],
				Start: loc[0],
				End:   loc[1],
				Kind:  ep.kind,
			})
		}
	}

	return spans
}
