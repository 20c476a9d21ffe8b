package contradiction

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kiranb/doc-checker/pkg/models"
)

// BuildReport assembles the final ordered result for one analysis run:
// symmetric duplicates removed, contradictions sorted by severity then clause
// type then document pair, sequential IDs assigned, and summary counts
// computed. Given the same input, the output is identical run to run.
func BuildReport(documents []models.Document, contradictions []models.Contradiction) models.Report {
	deduped := dedupe(contradictions)

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if ra, rb := severityRank(a.Severity), severityRank(b.Severity); ra != rb {
			return ra > rb
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Documents[0].Filename != b.Documents[0].Filename {
			return a.Documents[0].Filename < b.Documents[0].Filename
		}
		return a.Documents[1].Filename < b.Documents[1].Filename
	})

	for i := range deduped {
		deduped[i].ID = i + 1
	}

	return models.Report{
		Contradictions: deduped,
		Summary:        summarizeRun(documents, deduped),
	}
}

// dedupe drops records covering a document pair and clause type already seen,
// regardless of pair orientation.
func dedupe(contradictions []models.Contradiction) []models.Contradiction {
	seen := make(map[string]struct{}, len(contradictions))
	result := make([]models.Contradiction, 0, len(contradictions))

	for _, c := range contradictions {
		if len(c.Documents) != 2 {
			result = append(result, c)
			continue
		}
		first, second := c.Documents[0].DocumentID, c.Documents[1].DocumentID
		if second < first {
			first, second = second, first
		}
		key := string(c.Type) + "|" + first + "|" + second
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c)
	}

	return result
}

func summarizeRun(documents []models.Document, contradictions []models.Contradiction) models.Summary {
	summary := models.Summary{
		TotalDocuments:      len(documents),
		TotalContradictions: len(contradictions),
		BySeverity:          make(map[models.Severity]int),
		ByClauseType:        make(map[models.ClauseType]int),
	}

	var percentDiffs []float64
	for _, c := range contradictions {
		summary.BySeverity[c.Severity]++
		summary.ByClauseType[c.Type]++
		if c.Details.PercentDiff > 0 {
			percentDiffs = append(percentDiffs, c.Details.PercentDiff)
		}
	}

	if len(percentDiffs) > 0 {
		summary.MeanPercentDiff = stat.Mean(percentDiffs, nil)
		summary.MaxPercentDiff = floats.Max(percentDiffs)
	}

	summary.Recommendations = recommend(summary)
	return summary
}

func recommend(s models.Summary) []string {
	var recs []string

	if s.BySeverity[models.SeverityCritical] > 0 {
		recs = append(recs, "Address critical contradictions first, especially salary and termination terms")
	}
	if s.BySeverity[models.SeverityHigh] > 0 {
		recs = append(recs, "Review high-priority contradictions that may affect contract validity")
	}
	if s.ByClauseType[models.ClauseNoticePeriod] > 0 {
		recs = append(recs, "Standardize notice period requirements across all documents")
	}
	if s.ByClauseType[models.ClauseWorkingHours] > 0 {
		recs = append(recs, "Align working hours specifications in all relevant documents")
	}

	return recs
}

// GroupBySeverity groups contradictions by severity tier.
func GroupBySeverity(contradictions []models.Contradiction) map[models.Severity][]models.Contradiction {
	grouped := make(map[models.Severity][]models.Contradiction)
	for _, c := range contradictions {
		grouped[c.Severity] = append(grouped[c.Severity], c)
	}
	return grouped
}

// GroupByType groups contradictions by clause type.
func GroupByType(contradictions []models.Contradiction) map[models.ClauseType][]models.Contradiction {
	grouped := make(map[models.ClauseType][]models.Contradiction)
	for _, c := range contradictions {
		grouped[c.Type] = append(grouped[c.Type], c)
	}
	return grouped
}
