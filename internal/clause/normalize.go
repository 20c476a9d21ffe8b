package clause

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kiranb/doc-checker/pkg/models"
)

// Normalize converts a raw captured value into its comparable form for the
// given clause type. Values that cannot be parsed come back tagged unparsed
// with the raw text preserved; they are never dropped and never compared.
func Normalize(t models.ClauseType, raw string) models.NormalizedValue {
	def, ok := DefinitionFor(t)
	if !ok {
		return unparsed(raw)
	}
	return def.Normalize(raw)
}

func unparsed(raw string) models.NormalizedValue {
	return models.NormalizedValue{Kind: models.KindUnparsed, Raw: raw}
}

var durationRe = regexp.MustCompile(`(?i)(\d+)\s*-?\s*(day|week|month)s?`)

// NormalizeDuration parses a quantity and unit and converts to days using
// fixed ratios: week=7, month=30.
func NormalizeDuration(raw string) models.NormalizedValue {
	m := durationRe.FindStringSubmatch(raw)
	if m == nil {
		return unparsed(raw)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return unparsed(raw)
	}

	days := n
	switch strings.ToLower(m[2]) {
	case "week":
		days = n * 7
	case "month":
		days = n * 30
	}

	return models.NormalizedValue{Kind: models.KindDays, Days: days, Raw: raw}
}

var (
	currencyReplacer = strings.NewReplacer("$", "", "€", "", "£", "", ",", "")
	moneyKRe         = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*k\b`)
	moneyNumRe       = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// NormalizeMoney strips currency symbols and thousands separators, expands a
// trailing K, and parses the amount.
func NormalizeMoney(raw string) models.NormalizedValue {
	cleaned := currencyReplacer.Replace(raw)

	if m := moneyKRe.FindStringSubmatch(cleaned); m != nil {
		amount, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return models.NormalizedValue{Kind: models.KindAmount, Amount: amount * 1000, Raw: raw}
		}
	}

	if m := moneyNumRe.FindString(cleaned); m != "" {
		amount, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return models.NormalizedValue{Kind: models.KindAmount, Amount: amount, Raw: raw}
		}
	}

	return unparsed(raw)
}

var (
	clockAmPmRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	clock24Re   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

const (
	minutesNoon     = 12 * 60
	minutesMidnight = 24 * 60 // end of day, not start
)

// clockMinutes finds the first clock expression in s and returns it as
// minutes since midnight. "midnight" reads as end of day.
func clockMinutes(s string) (int, bool) {
	lower := strings.ToLower(s)

	type hit struct {
		idx, minutes int
	}
	var hits []hit

	if loc := clockAmPmRe.FindStringSubmatchIndex(s); loc != nil {
		m := clockAmPmRe.FindStringSubmatch(s)
		h, _ := strconv.Atoi(m[1])
		min := 0
		if m[2] != "" {
			min, _ = strconv.Atoi(m[2])
		}
		if h >= 1 && h <= 12 && min < 60 {
			h = h % 12
			if strings.EqualFold(m[3], "pm") {
				h += 12
			}
			hits = append(hits, hit{loc[0], h*60 + min})
		}
	}

	if loc := clock24Re.FindStringSubmatchIndex(s); loc != nil {
		m := clock24Re.FindStringSubmatch(s)
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h < 24 && min < 60 {
			hits = append(hits, hit{loc[0], h*60 + min})
		}
	}

	if idx := strings.Index(lower, "midnight"); idx >= 0 {
		hits = append(hits, hit{idx, minutesMidnight})
	}
	if idx := strings.Index(lower, "noon"); idx >= 0 {
		hits = append(hits, hit{idx, minutesNoon})
	}

	if len(hits) == 0 {
		return 0, false
	}

	best := hits[0]
	for _, h := range hits[1:] {
		if h.idx < best.idx {
			best = h
		}
	}
	return best.minutes, true
}

// NormalizeClock parses a single 12-hour or 24-hour clock expression (or the
// words midnight/noon) to minutes since midnight.
func NormalizeClock(raw string) models.NormalizedValue {
	minutes, ok := clockMinutes(raw)
	if !ok {
		return unparsed(raw)
	}
	return models.NormalizedValue{Kind: models.KindClock, Start: minutes, End: minutes, Raw: raw}
}

var (
	rangeAmPmRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s*(?:to|until|-|–)\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	range24Re   = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(?:to|until|-|–)\s*(\d{1,2}):(\d{2})`)
)

func toMinutes(hourStr, minStr, period string) (int, bool) {
	h, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, false
	}
	min := 0
	if minStr != "" {
		min, err = strconv.Atoi(minStr)
		if err != nil || min >= 60 {
			return 0, false
		}
	}

	if period != "" {
		if h < 1 || h > 12 {
			return 0, false
		}
		h = h % 12
		if strings.EqualFold(period, "pm") {
			h += 12
		}
	} else if h >= 24 {
		return 0, false
	}

	return h*60 + min, true
}

// NormalizeClockRange parses expressions like "9 AM to 5 PM" or "9:00-17:30"
// to a pair of minutes-since-midnight values.
func NormalizeClockRange(raw string) models.NormalizedValue {
	if m := rangeAmPmRe.FindStringSubmatch(raw); m != nil {
		start, ok1 := toMinutes(m[1], m[2], m[3])
		end, ok2 := toMinutes(m[4], m[5], m[6])
		if ok1 && ok2 {
			return models.NormalizedValue{Kind: models.KindClockRange, Start: start, End: end, Raw: raw}
		}
	}

	if m := range24Re.FindStringSubmatch(raw); m != nil {
		start, ok1 := toMinutes(m[1], m[2], "")
		end, ok2 := toMinutes(m[3], m[4], "")
		if ok1 && ok2 {
			return models.NormalizedValue{Kind: models.KindClockRange, Start: start, End: end, Raw: raw}
		}
	}

	return unparsed(raw)
}

var (
	dateTokenRe = regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{1,2}-\d{1,2}-\d{4}\b|\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b|\b\d{1,2}(?:st|nd|rd|th)?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}\b`)
	ordinalRe   = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\b`)

	monthReplacer = strings.NewReplacer(
		"january", "January", "february", "February", "march", "March",
		"april", "April", "may", "May", "june", "June", "july", "July",
		"august", "August", "september", "September", "october", "October",
		"november", "November", "december", "December",
	)

	dateLayouts = []string{
		"1/2/2006",
		"1/2/06",
		"1-2-2006",
		"January 2, 2006",
		"January 2 2006",
		"2 January 2006",
	}
)

func parseDate(s string) (time.Time, bool) {
	s = ordinalRe.ReplaceAllString(s, "$1")
	s = monthReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDateSet parses every date found in the raw value into a sorted,
// deduplicated set of calendar dates.
func NormalizeDateSet(raw string) models.NormalizedValue {
	seen := make(map[string]struct{})
	for _, token := range dateTokenRe.FindAllString(raw, -1) {
		if t, ok := parseDate(token); ok {
			seen[t.Format("2006-01-02")] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return unparsed(raw)
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return models.NormalizedValue{Kind: models.KindDateSet, Dates: dates, Raw: raw}
}

// NormalizePhrase lower-cases, collapses whitespace and trims trailing
// punctuation; free-text clauses are compared by keyword groups, not equality.
func NormalizePhrase(raw string) models.NormalizedValue {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	phrase = spaceRe.ReplaceAllString(phrase, " ")
	phrase = strings.TrimRight(phrase, ".,;: ")

	if phrase == "" {
		return unparsed(raw)
	}

	return models.NormalizedValue{Kind: models.KindPhrase, Phrase: phrase, Raw: raw}
}
