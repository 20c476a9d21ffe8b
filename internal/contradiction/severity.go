package contradiction

import (
	"github.com/kiranb/doc-checker/pkg/models"
)

// Thresholds hold the per-type severity boundaries. They are configuration:
// callers can override any of them (e.g. from a YAML file) without touching
// the comparison logic.
type Thresholds struct {
	SalaryCriticalPct    float64 `yaml:"salary_critical_pct"`
	SalaryHighPct        float64 `yaml:"salary_high_pct"`
	SalaryMediumPct      float64 `yaml:"salary_medium_pct"`
	ClockCriticalMinutes int     `yaml:"clock_critical_minutes"`
	NoticeHighDays       int     `yaml:"notice_high_days"`
}

// DefaultThresholds returns the stock severity boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SalaryCriticalPct:    20,
		SalaryHighPct:        10,
		SalaryMediumPct:      1,
		ClockCriticalMinutes: 4 * 60,
		NoticeHighDays:       14,
	}
}

// Classifier maps (clause type, magnitude) to a severity tier. Rules are
// evaluated highest-severity-first.
type Classifier struct {
	t Thresholds
}

// NewClassifier creates a classifier. Zero thresholds fall back to defaults
// field by field so a partial override file stays valid.
func NewClassifier(t Thresholds) *Classifier {
	def := DefaultThresholds()
	if t.SalaryCriticalPct <= 0 {
		t.SalaryCriticalPct = def.SalaryCriticalPct
	}
	if t.SalaryHighPct <= 0 {
		t.SalaryHighPct = def.SalaryHighPct
	}
	if t.SalaryMediumPct <= 0 {
		t.SalaryMediumPct = def.SalaryMediumPct
	}
	if t.ClockCriticalMinutes <= 0 {
		t.ClockCriticalMinutes = def.ClockCriticalMinutes
	}
	if t.NoticeHighDays <= 0 {
		t.NoticeHighDays = def.NoticeHighDays
	}
	return &Classifier{t: t}
}

// Classify derives the severity for a fired conflict. It never invents a
// severity: every tier follows deterministically from the clause type and the
// measured magnitude.
func (c *Classifier) Classify(clauseType models.ClauseType, mag models.Magnitude) models.Severity {
	switch clauseType {
	case models.ClauseSalary:
		switch {
		case mag.PercentDiff >= c.t.SalaryCriticalPct:
			return models.SeverityCritical
		case mag.PercentDiff >= c.t.SalaryHighPct:
			return models.SeverityHigh
		case mag.PercentDiff >= c.t.SalaryMediumPct:
			return models.SeverityMedium
		default:
			return models.SeverityLow
		}

	case models.ClauseDeadline, models.ClauseWorkingHours:
		// Time conflicts are operationally significant; any conflict is at
		// least high.
		if mag.MinutesDiff >= c.t.ClockCriticalMinutes {
			return models.SeverityCritical
		}
		return models.SeverityHigh

	case models.ClauseNoticePeriod:
		if mag.AbsoluteDiff >= float64(c.t.NoticeHighDays) {
			return models.SeverityHigh
		}
		return models.SeverityMedium

	case models.ClauseImportantDates:
		return models.SeverityMedium

	case models.ClauseTermination:
		// Conflicting termination terms carry legal risk.
		return models.SeverityCritical

	default:
		return models.SeverityMedium
	}
}

// severityRank orders severities for sorting, highest first.
func severityRank(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return 4
	case models.SeverityHigh:
		return 3
	case models.SeverityMedium:
		return 2
	case models.SeverityLow:
		return 1
	default:
		return 0
	}
}
