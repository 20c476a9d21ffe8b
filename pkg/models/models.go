package models

import (
	"time"
)

// ClauseType identifies a kind of extracted clause. The set is defined by the
// pattern library; adding a type there requires no changes elsewhere.
type ClauseType string

const (
	ClauseNoticePeriod   ClauseType = "notice_period"
	ClauseWorkingHours   ClauseType = "working_hours"
	ClauseSalary         ClauseType = "salary"
	ClauseDeadline       ClauseType = "deadline"
	ClauseTermination    ClauseType = "termination_clause"
	ClauseImportantDates ClauseType = "important_dates"
)

// ValueKind tags the semantic representation held by a NormalizedValue.
type ValueKind string

const (
	KindDays       ValueKind = "days"        // duration converted to days
	KindAmount     ValueKind = "amount"      // monetary amount
	KindClock      ValueKind = "clock"       // minutes since midnight
	KindClockRange ValueKind = "clock_range" // start/end minutes since midnight
	KindDateSet    ValueKind = "date_set"    // set of calendar dates
	KindPhrase     ValueKind = "phrase"      // canonical lower-cased text
	KindUnparsed   ValueKind = "unparsed"    // raw text kept as evidence only
)

// NormalizedValue is the comparable form of a raw clause value. Only the
// fields implied by Kind are meaningful; everything else stays zero.
type NormalizedValue struct {
	Kind   ValueKind `json:"kind"`
	Days   int       `json:"days,omitempty"`
	Amount float64   `json:"amount,omitempty"`
	Start  int       `json:"start,omitempty"`
	End    int       `json:"end,omitempty"`
	Dates  []string  `json:"dates,omitempty"` // sorted, deduplicated, YYYY-MM-DD
	Phrase string    `json:"phrase,omitempty"`
	Raw    string    `json:"raw"`
}

// Comparable reports whether the value can participate in pairwise comparison.
func (v NormalizedValue) Comparable() bool {
	return v.Kind != KindUnparsed
}

// Confidence indicates how a clause candidate was located.
type Confidence string

const (
	ConfidencePattern Confidence = "pattern"
	ConfidenceEntity  Confidence = "entity"
)

// ClauseMatch is one extracted clause for a (document, clause type) pair.
type ClauseMatch struct {
	Type       ClauseType      `json:"type"`
	RawText    string          `json:"raw_text"`
	Value      NormalizedValue `json:"value"`
	Sentence   string          `json:"sentence"`
	Confidence Confidence      `json:"confidence"`
}

// ClauseMap holds at most one ClauseMatch per clause type for a document.
type ClauseMap map[ClauseType]ClauseMatch

// Document status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Document is a processed document with its extracted clause map.
type Document struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Text      string    `json:"-"`
	Status    string    `json:"status"`
	Clauses   ClauseMap `json:"clauses"`
	CreatedAt time.Time `json:"created_at"`
}

// Severity is the risk tier of a contradiction.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Magnitude carries the comparison method used and the measured disagreement.
// Numeric fields are populated only where the method defines them.
type Magnitude struct {
	Method           string   `json:"method"`
	AbsoluteDiff     float64  `json:"absolute_diff,omitempty"`
	PercentDiff      float64  `json:"percent_diff,omitempty"`
	MinutesDiff      int      `json:"minutes_diff,omitempty"`
	OnlyInFirst      []string `json:"only_in_first,omitempty"`
	OnlyInSecond     []string `json:"only_in_second,omitempty"`
	ConflictingTerms []string `json:"conflicting_terms,omitempty"`
}

// DocumentValue is one document's side of a contradiction.
type DocumentValue struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Value      string `json:"value"`
}

// Contradiction is a detected disagreement between two documents' normalized
// values for the same clause type. IDs are sequential within a report so that
// re-running analysis over identical inputs yields identical output.
type Contradiction struct {
	ID        int             `json:"id"`
	Type      ClauseType      `json:"clause_type"`
	Severity  Severity        `json:"severity"`
	Summary   string          `json:"summary"`
	Documents []DocumentValue `json:"documents"`
	Details   Magnitude       `json:"details"`
}

// Summary aggregates counts over one analysis run.
type Summary struct {
	TotalDocuments      int                `json:"total_documents"`
	TotalContradictions int                `json:"total_contradictions"`
	BySeverity          map[Severity]int   `json:"by_severity"`
	ByClauseType        map[ClauseType]int `json:"by_clause_type"`
	MeanPercentDiff     float64            `json:"mean_percent_diff,omitempty"`
	MaxPercentDiff      float64            `json:"max_percent_diff,omitempty"`
	Recommendations     []string           `json:"recommendations"`
}

// Report is the full result of one analyze run.
type Report struct {
	Contradictions []Contradiction `json:"contradictions"`
	Summary        Summary         `json:"summary"`
}
