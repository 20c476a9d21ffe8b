package clause

import (
	"reflect"
	"testing"

	"github.com/kiranb/doc-checker/pkg/models"
)

const sampleContract = `EMPLOYMENT CONTRACT

This agreement is between Company ABC and John Doe.

1. The employee must provide 30 days notice before termination.
2. Working hours are from 9 AM to 5 PM, Monday through Friday.
3. Either party may terminate this agreement with proper notice.
4. All reports must be submitted by midnight on the deadline.
5. Annual salary is $75,000.
6. This contract expires on December 31, 2024.`

func TestExtract_AllClauseTypes(t *testing.T) {
	extractor := NewExtractor(NewRegexRecognizer())
	clauses := extractor.Extract(sampleContract)

	if len(clauses) != 6 {
		t.Fatalf("expected 6 clause types, got %d: %v", len(clauses), clauses)
	}

	notice, ok := clauses[models.ClauseNoticePeriod]
	if !ok {
		t.Fatal("expected a notice_period clause")
	}
	if notice.Value.Kind != models.KindDays || notice.Value.Days != 30 {
		t.Errorf("notice period: expected 30 days, got %+v", notice.Value)
	}

	hours, ok := clauses[models.ClauseWorkingHours]
	if !ok {
		t.Fatal("expected a working_hours clause")
	}
	if hours.Value.Start != 9*60 || hours.Value.End != 17*60 {
		t.Errorf("working hours: expected 540-1020, got %d-%d", hours.Value.Start, hours.Value.End)
	}

	salary, ok := clauses[models.ClauseSalary]
	if !ok {
		t.Fatal("expected a salary clause")
	}
	if salary.Value.Kind != models.KindAmount || salary.Value.Amount != 75000 {
		t.Errorf("salary: expected 75000, got %+v", salary.Value)
	}

	deadline, ok := clauses[models.ClauseDeadline]
	if !ok {
		t.Fatal("expected a deadline clause")
	}
	if deadline.Value.Kind != models.KindClock || deadline.Value.Start != 24*60 {
		t.Errorf("deadline: expected midnight (1440), got %+v", deadline.Value)
	}

	term, ok := clauses[models.ClauseTermination]
	if !ok {
		t.Fatal("expected a termination clause")
	}
	if term.Value.Phrase != "either party may terminate this agreement with proper notice" {
		t.Errorf("unexpected termination phrase: %q", term.Value.Phrase)
	}

	dates, ok := clauses[models.ClauseImportantDates]
	if !ok {
		t.Fatal("expected an important_dates clause")
	}
	if !reflect.DeepEqual(dates.Value.Dates, []string{"2024-12-31"}) {
		t.Errorf("important dates: expected [2024-12-31], got %v", dates.Value.Dates)
	}

	for typ, match := range clauses {
		if match.Confidence != models.ConfidencePattern {
			t.Errorf("%s: expected pattern confidence, got %s", typ, match.Confidence)
		}
		if match.Sentence == "" {
			t.Errorf("%s: evidence sentence must not be empty", typ)
		}
	}
}

func TestExtract_EmptyText(t *testing.T) {
	extractor := NewExtractor(NewRegexRecognizer())

	for _, text := range []string{"", "   \n\t  "} {
		clauses := extractor.Extract(text)
		if len(clauses) != 0 {
			t.Errorf("Extract(%q): expected empty map, got %v", text, clauses)
		}
	}
}

func TestExtract_EarlierSentenceWins(t *testing.T) {
	extractor := NewExtractor(nil)
	clauses := extractor.Extract("Base salary is $75,000 per year. The revised salary is $85,000.")

	salary, ok := clauses[models.ClauseSalary]
	if !ok {
		t.Fatal("expected a salary clause")
	}
	if salary.Value.Amount != 75000 {
		t.Errorf("expected the first occurrence (75000) to win, got %v", salary.Value.Amount)
	}
}

func TestExtract_ImportantDatesAggregate(t *testing.T) {
	extractor := NewExtractor(nil)
	clauses := extractor.Extract(
		"The contract starts on 01/15/2025. It expires on December 31, 2025. Renewal notice is due on December 31, 2025.")

	dates, ok := clauses[models.ClauseImportantDates]
	if !ok {
		t.Fatal("expected an important_dates clause")
	}
	want := []string{"2025-01-15", "2025-12-31"}
	if !reflect.DeepEqual(dates.Value.Dates, want) {
		t.Errorf("expected %v, got %v", want, dates.Value.Dates)
	}
}

func TestExtract_EntityAssist(t *testing.T) {
	// No salary pattern fires here: the amount has no currency symbol and does
	// not directly follow the trigger word.
	text := "Total remuneration shall be 72,500 annually."

	withRecognizer := NewExtractor(NewRegexRecognizer()).Extract(text)
	salary, ok := withRecognizer[models.ClauseSalary]
	if !ok {
		t.Fatal("expected the recognizer to surface a salary clause")
	}
	if salary.Value.Amount != 72500 {
		t.Errorf("expected 72500, got %v", salary.Value.Amount)
	}
	if salary.Confidence != models.ConfidenceEntity {
		t.Errorf("expected entity confidence, got %s", salary.Confidence)
	}
}

func TestExtract_DegradesWithoutRecognizer(t *testing.T) {
	text := "Total remuneration shall be 72,500 annually. Notice period of 30 days applies."

	clauses := NewExtractor(nil).Extract(text)

	if _, ok := clauses[models.ClauseSalary]; ok {
		t.Error("pattern-only extraction should not find this salary")
	}
	if notice, ok := clauses[models.ClauseNoticePeriod]; !ok || notice.Value.Days != 30 {
		t.Error("pattern extraction must keep working without a recognizer")
	}
}

func TestExtract_WrittenNumbers(t *testing.T) {
	clauses := NewExtractor(nil).Extract("The employee must give thirty days notice.")

	notice, ok := clauses[models.ClauseNoticePeriod]
	if !ok {
		t.Fatal("expected a notice_period clause")
	}
	if notice.Value.Days != 30 {
		t.Errorf("expected written 'thirty' to normalize to 30 days, got %d", notice.Value.Days)
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("--- Page 1 ---\nSalary   is\t$50,000.\n--- Page 2 ---\nMore text.")
	want := "Salary is $50,000. More text."
	if got != want {
		t.Errorf("CleanText: expected %q, got %q", want, got)
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("First clause. Second clause! Third clause? Trailing fragment")
	if len(sentences) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "First clause." || sentences[3] != "Trailing fragment" {
		t.Errorf("unexpected sentence split: %v", sentences)
	}
}
