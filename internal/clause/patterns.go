package clause

import (
	"regexp"
	"strings"

	"github.com/kiranb/doc-checker/pkg/models"
)

// Comparison method tags dispatched on by the contradiction detector.
const (
	CompareDuration   = "duration"
	CompareNumeric    = "numeric"
	CompareClock      = "clock"
	CompareClockRange = "clock_range"
	CompareDateSet    = "date_set"
	CompareKeyword    = "keyword"
)

// Definition binds a clause type to its trigger patterns, normalization rule
// and comparison method. The rest of the pipeline dispatches purely on the
// clause type; adding a type means adding one Definition here.
type Definition struct {
	Type      models.ClauseType
	Patterns  []*regexp.Regexp // tried in priority order, first match wins
	Entity    EntityKind       // optional recognizer assist, "" disables it
	Keywords  []string         // sentence must mention one for entity assist
	Normalize func(raw string) models.NormalizedValue
	Compare   string
	Multi     bool // aggregates all matches into a set instead of keeping one
}

// Library is the process-wide pattern library. It is built once at package
// init and never mutated; declaration order fixes the iteration order of
// clause types everywhere in the pipeline.
var Library = []Definition{
	{
		Type: models.ClauseNoticePeriod,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b\d+\s+(?:days?|weeks?|months?)['’]?\s+notice\b`),
			regexp.MustCompile(`(?i)\bnotice\s+period\s+of\s+\d+\s+(?:days?|weeks?|months?)\b`),
			regexp.MustCompile(`(?i)\b\d+[-\s](?:day|week|month)\s+notice(?:\s+period)?\b`),
			regexp.MustCompile(`(?i)\b(?:notice|notification)\s+of\s+\d+\s+(?:days?|weeks?|months?)\b`),
		},
		Normalize: NormalizeDuration,
		Compare:   CompareDuration,
	},
	{
		Type: models.ClauseWorkingHours,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:working|work|office|business)\s+hours?\s*(?:are|:)?\s*(?:from\s+)?\d{1,2}(?::\d{2})?\s*(?:am|pm)\s*(?:to|-|–|until)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)`),
			regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\s*(?:to|-|–|until)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`),
			regexp.MustCompile(`(?i)(?:working|work|office|business)\s+hours?\s*(?:are|:)?\s*(?:from\s+)?\d{1,2}:\d{2}\s*(?:to|-|–|until)\s*\d{1,2}:\d{2}`),
		},
		Entity:    EntityTime,
		Keywords:  []string{"hours", "shift", "schedule"},
		Normalize: NormalizeClockRange,
		Compare:   CompareClockRange,
	},
	{
		Type: models.ClauseSalary,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:salary|compensation|pay|remuneration)\s+(?:of\s+|is\s+|:\s*)?[$€£]\s?\d{1,3}(?:,\d{3})*(?:\.\d+)?\s*k?\b`),
			regexp.MustCompile(`(?i)(?:salary|compensation|remuneration)\s+(?:of\s+|is\s+|:\s*)?\d{1,3}(?:,\d{3})+(?:\.\d+)?\b`),
			regexp.MustCompile(`(?i)(?:salary|compensation|remuneration)\s+(?:of\s+|is\s+|:\s*)?\d{4,}(?:\.\d+)?\b`),
			regexp.MustCompile(`(?i)(?:salary|compensation|remuneration)\s+(?:of\s+|is\s+|:\s*)?\d+(?:\.\d+)?\s*k\b`),
			regexp.MustCompile(`(?i)[$€£]\s?\d{1,3}(?:,\d{3})*(?:\.\d+)?\s*k?\b`),
			regexp.MustCompile(`(?i)\b\d{1,3}(?:,\d{3})*(?:\.\d+)?\s+(?:dollars?|usd|euros?|eur)\b`),
			regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*k\s+(?:per\s+(?:year|annum)|annually)\b`),
		},
		Entity:    EntityMoney,
		Keywords:  []string{"salary", "compensation", "pay", "remuneration", "wage"},
		Normalize: NormalizeMoney,
		Compare:   CompareNumeric,
	},
	{
		Type: models.ClauseDeadline,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bdeadline[^.!?]*?(?:\d{1,2}(?::\d{2})?\s*(?:am|pm)|midnight|noon)`),
			regexp.MustCompile(`(?i)\bdue\s+(?:by|on|at|before)[^.!?]*?(?:\d{1,2}(?::\d{2})?\s*(?:am|pm)|midnight|noon)`),
			regexp.MustCompile(`(?i)\bmust\s+be\s+(?:completed|submitted|done|received)\s+by[^.!?]*?(?:\d{1,2}(?::\d{2})?\s*(?:am|pm)|midnight|noon)`),
			regexp.MustCompile(`(?i)\b(?:expires?|closes?)\s+at[^.!?]*?(?:\d{1,2}(?::\d{2})?\s*(?:am|pm)|midnight|noon)`),
		},
		Entity:    EntityTime,
		Keywords:  []string{"deadline", "due", "submitted", "expires"},
		Normalize: NormalizeClock,
		Compare:   CompareClock,
	},
	{
		Type: models.ClauseTermination,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:either|any)\s+party\s+may\s+terminate[^.!?]*`),
			regexp.MustCompile(`(?i)(?:employer|company)\s+may\s+terminate[^.!?]*`),
			regexp.MustCompile(`(?i)termination\s+(?:of\s+)?(?:employment|contract|agreement)[^.!?]*`),
			regexp.MustCompile(`(?i)(?:terminate|terminated)\s+(?:this\s+)?(?:employment|contract|agreement)[^.!?]*`),
			regexp.MustCompile(`(?i)dismissal\s+(?:with|without)\s+cause[^.!?]*`),
			regexp.MustCompile(`(?i)employment\s+is\s+at[\s-]will[^.!?]*`),
		},
		Normalize: NormalizePhrase,
		Compare:   CompareKeyword,
	},
	{
		Type: models.ClauseImportantDates,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
			regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`),
			regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`),
			regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}\b`),
		},
		Entity:    EntityDate,
		Keywords:  []string{"date", "effective", "expires", "commence", "starts"},
		Normalize: NormalizeDateSet,
		Compare:   CompareDateSet,
		Multi:     true,
	},
}

// DefinitionFor looks up the Definition for a clause type.
func DefinitionFor(t models.ClauseType) (Definition, bool) {
	for _, def := range Library {
		if def.Type == t {
			return def, true
		}
	}
	return Definition{}, false
}

var (
	pageMarkerRe = regexp.MustCompile(`--- Page \d+ ---`)
	spaceRe      = regexp.MustCompile(`\s+`)

	writtenNumbers = []struct {
		re  *regexp.Regexp
		num string
	}{
		{regexp.MustCompile(`(?i)\bfourteen\b`), "14"},
		{regexp.MustCompile(`(?i)\bthirty\b`), "30"},
		{regexp.MustCompile(`(?i)\bsixty\b`), "60"},
		{regexp.MustCompile(`(?i)\bninety\b`), "90"},
	}
)

// CleanText collapses whitespace, drops page markers and rewrites the written
// numbers the original documents commonly spell out, so that one pattern per
// trigger suffices.
func CleanText(text string) string {
	text = pageMarkerRe.ReplaceAllString(text, " ")
	for _, wn := range writtenNumbers {
		text = wn.re.ReplaceAllString(text, wn.num)
	}
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]?`)

// SplitSentences breaks cleaned text into sentences, preserving document
// order. Empty fragments are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
