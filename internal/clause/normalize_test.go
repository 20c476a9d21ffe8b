package clause

import (
	"reflect"
	"testing"

	"github.com/kiranb/doc-checker/pkg/models"
)

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		raw  string
		days int
	}{
		{"30 days notice", 30},
		{"2 weeks notice", 14},
		{"notice period of 1 month", 30},
		{"90-day notice period", 90},
		{"3 months", 90},
	}

	for _, tt := range tests {
		v := NormalizeDuration(tt.raw)
		if v.Kind != models.KindDays {
			t.Errorf("NormalizeDuration(%q): expected kind days, got %s", tt.raw, v.Kind)
			continue
		}
		if v.Days != tt.days {
			t.Errorf("NormalizeDuration(%q): expected %d days, got %d", tt.raw, tt.days, v.Days)
		}
	}
}

func TestNormalizeDuration_Unparseable(t *testing.T) {
	v := NormalizeDuration("a reasonable period")
	if v.Kind != models.KindUnparsed {
		t.Errorf("expected unparsed, got %s", v.Kind)
	}
	if v.Raw != "a reasonable period" {
		t.Error("unparsed value must retain the raw text")
	}
}

func TestNormalizeMoney(t *testing.T) {
	tests := []struct {
		raw    string
		amount float64
	}{
		{"$75,000", 75000},
		{"75000.00", 75000},
		{"salary of $85,000", 85000},
		{"80k", 80000},
		{"€62,500.50", 62500.50},
		{"95.5K", 95500},
	}

	for _, tt := range tests {
		v := NormalizeMoney(tt.raw)
		if v.Kind != models.KindAmount {
			t.Errorf("NormalizeMoney(%q): expected kind amount, got %s", tt.raw, v.Kind)
			continue
		}
		if v.Amount != tt.amount {
			t.Errorf("NormalizeMoney(%q): expected %v, got %v", tt.raw, tt.amount, v.Amount)
		}
	}
}

func TestNormalizeMoney_EquivalentFormats(t *testing.T) {
	a := NormalizeMoney("$75,000")
	b := NormalizeMoney("75000.00")
	c := NormalizeMoney("75k")

	if a.Amount != b.Amount || b.Amount != c.Amount {
		t.Errorf("equivalent amounts must normalize identically: %v %v %v", a.Amount, b.Amount, c.Amount)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		raw     string
		minutes int
	}{
		{"5:00 PM", 17 * 60},
		{"5 pm", 17 * 60},
		{"9 AM", 9 * 60},
		{"12 pm", 12 * 60},
		{"12 am", 0},
		{"17:30", 17*60 + 30},
		{"by midnight", 24 * 60},
		{"at noon", 12 * 60},
	}

	for _, tt := range tests {
		v := NormalizeClock(tt.raw)
		if v.Kind != models.KindClock {
			t.Errorf("NormalizeClock(%q): expected kind clock, got %s", tt.raw, v.Kind)
			continue
		}
		if v.Start != tt.minutes {
			t.Errorf("NormalizeClock(%q): expected %d minutes, got %d", tt.raw, tt.minutes, v.Start)
		}
	}
}

func TestNormalizeClock_Unparseable(t *testing.T) {
	v := NormalizeClock("end of fiscal year")
	if v.Kind != models.KindUnparsed {
		t.Errorf("expected unparsed, got %s", v.Kind)
	}
}

func TestNormalizeClockRange(t *testing.T) {
	tests := []struct {
		raw        string
		start, end int
	}{
		{"9 AM to 5 PM", 9 * 60, 17 * 60},
		{"8 am - 6 pm", 8 * 60, 18 * 60},
		{"working hours: 9:00 to 17:30", 9 * 60, 17*60 + 30},
		{"10:30 AM until 7 PM", 10*60 + 30, 19 * 60},
	}

	for _, tt := range tests {
		v := NormalizeClockRange(tt.raw)
		if v.Kind != models.KindClockRange {
			t.Errorf("NormalizeClockRange(%q): expected kind clock_range, got %s", tt.raw, v.Kind)
			continue
		}
		if v.Start != tt.start || v.End != tt.end {
			t.Errorf("NormalizeClockRange(%q): expected %d-%d, got %d-%d",
				tt.raw, tt.start, tt.end, v.Start, v.End)
		}
	}
}

func TestNormalizeDateSet(t *testing.T) {
	v := NormalizeDateSet("December 31, 2024; 01/15/2025")
	if v.Kind != models.KindDateSet {
		t.Fatalf("expected kind date_set, got %s", v.Kind)
	}

	want := []string{"2024-12-31", "2025-01-15"}
	if !reflect.DeepEqual(v.Dates, want) {
		t.Errorf("expected %v, got %v", want, v.Dates)
	}
}

func TestNormalizeDateSet_DeduplicatesFormats(t *testing.T) {
	v := NormalizeDateSet("12/31/2024 and December 31, 2024 and 31st December 2024")
	if v.Kind != models.KindDateSet {
		t.Fatalf("expected kind date_set, got %s", v.Kind)
	}
	if len(v.Dates) != 1 || v.Dates[0] != "2024-12-31" {
		t.Errorf("expected a single deduplicated date, got %v", v.Dates)
	}
}

func TestNormalizePhrase(t *testing.T) {
	v := NormalizePhrase("  Either  Party May   Terminate This Agreement. ")
	if v.Kind != models.KindPhrase {
		t.Fatalf("expected kind phrase, got %s", v.Kind)
	}
	if v.Phrase != "either party may terminate this agreement" {
		t.Errorf("unexpected canonical phrase: %q", v.Phrase)
	}
}

func TestNormalize_UnknownTypeFailsSoft(t *testing.T) {
	v := Normalize(models.ClauseType("probation_period"), "90 days")
	if v.Kind != models.KindUnparsed {
		t.Errorf("unknown clause type should normalize to unparsed, got %s", v.Kind)
	}
	if v.Comparable() {
		t.Error("unparsed values must not be comparable")
	}
}
