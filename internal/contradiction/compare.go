package contradiction

import (
	"math"
	"regexp"
	"strings"

	"github.com/kiranb/doc-checker/internal/clause"
	"github.com/kiranb/doc-checker/pkg/models"
)

// compareFunc reports whether two comparable normalized values conflict and
// measures the disagreement. Both values are guaranteed non-unparsed and of
// the kind the clause type produces.
type compareFunc func(a, b models.NormalizedValue) (bool, models.Magnitude)

var compareFuncs = map[string]compareFunc{
	clause.CompareNumeric:    compareNumeric,
	clause.CompareDuration:   compareDuration,
	clause.CompareClock:      compareClock,
	clause.CompareClockRange: compareClockRange,
	clause.CompareDateSet:    compareDateSet,
	clause.CompareKeyword:    compareKeyword,
}

// compareNumeric conflicts on any non-equal amounts. Percentage difference is
// relative to the larger value, so "$75,000" and "75000.00" compare equal.
func compareNumeric(a, b models.NormalizedValue) (bool, models.Magnitude) {
	mag := models.Magnitude{Method: clause.CompareNumeric}

	diff := math.Abs(a.Amount - b.Amount)
	if diff < 1e-9 {
		return false, mag
	}

	larger := math.Max(a.Amount, b.Amount)
	mag.AbsoluteDiff = diff
	if larger > 0 {
		mag.PercentDiff = diff / larger * 100
	}
	return true, mag
}

func compareDuration(a, b models.NormalizedValue) (bool, models.Magnitude) {
	mag := models.Magnitude{Method: clause.CompareDuration}

	if a.Days == b.Days {
		return false, mag
	}

	diff := math.Abs(float64(a.Days - b.Days))
	mag.AbsoluteDiff = diff
	if larger := math.Max(float64(a.Days), float64(b.Days)); larger > 0 {
		mag.PercentDiff = diff / larger * 100
	}
	return true, mag
}

func compareClock(a, b models.NormalizedValue) (bool, models.Magnitude) {
	mag := models.Magnitude{Method: clause.CompareClock}

	diff := a.Start - b.Start
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		return false, mag
	}

	mag.MinutesDiff = diff
	return true, mag
}

// compareClockRange conflicts when either endpoint differs; the magnitude is
// the larger of the two endpoint differences in minutes.
func compareClockRange(a, b models.NormalizedValue) (bool, models.Magnitude) {
	mag := models.Magnitude{Method: clause.CompareClockRange}

	startDiff := a.Start - b.Start
	if startDiff < 0 {
		startDiff = -startDiff
	}
	endDiff := a.End - b.End
	if endDiff < 0 {
		endDiff = -endDiff
	}

	if startDiff == 0 && endDiff == 0 {
		return false, mag
	}

	mag.MinutesDiff = startDiff
	if endDiff > startDiff {
		mag.MinutesDiff = endDiff
	}
	return true, mag
}

// compareDateSet conflicts when the two date sets are not equal; the magnitude
// is the symmetric difference.
func compareDateSet(a, b models.NormalizedValue) (bool, models.Magnitude) {
	mag := models.Magnitude{Method: clause.CompareDateSet}

	setA := make(map[string]struct{}, len(a.Dates))
	for _, d := range a.Dates {
		setA[d] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b.Dates))
	for _, d := range b.Dates {
		setB[d] = struct{}{}
	}

	for _, d := range a.Dates {
		if _, ok := setB[d]; !ok {
			mag.OnlyInFirst = append(mag.OnlyInFirst, d)
		}
	}
	for _, d := range b.Dates {
		if _, ok := setA[d]; !ok {
			mag.OnlyInSecond = append(mag.OnlyInSecond, d)
		}
	}

	return len(mag.OnlyInFirst) > 0 || len(mag.OnlyInSecond) > 0, mag
}

// opposingTerms are pre-declared keyword groups whose co-occurrence across two
// documents marks a semantic conflict in free-text clauses. Terms match on
// word boundaries; spaces also match hyphens ("at will" vs "at-will").
var opposingTerms = [][2]string{
	{"without cause", "with cause"},
	{"without cause", "for cause"},
	{"at will", "for cause"},
	{"either party", "employer only"},
	{"immediately", "with notice"},
}

var termRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	for _, pair := range opposingTerms {
		for _, term := range pair {
			if _, ok := res[term]; !ok {
				pattern := `\b` + strings.ReplaceAll(regexp.QuoteMeta(term), ` `, `[\s-]+`) + `\b`
				res[term] = regexp.MustCompile(pattern)
			}
		}
	}
	return res
}()

func phraseHas(phrase, term string) bool {
	return termRes[term].MatchString(phrase)
}

// compareKeyword conflicts when the two canonical phrases fall into opposing
// keyword groups. The magnitude is qualitative: the conflicting terms, in
// document order.
func compareKeyword(a, b models.NormalizedValue) (bool, models.Magnitude) {
	mag := models.Magnitude{Method: clause.CompareKeyword}

	if a.Phrase == b.Phrase {
		return false, mag
	}

	for _, pair := range opposingTerms {
		if phraseHas(a.Phrase, pair[0]) && phraseHas(b.Phrase, pair[1]) {
			mag.ConflictingTerms = []string{pair[0], pair[1]}
			return true, mag
		}
		if phraseHas(a.Phrase, pair[1]) && phraseHas(b.Phrase, pair[0]) {
			mag.ConflictingTerms = []string{pair[1], pair[0]}
			return true, mag
		}
	}

	return false, mag
}
