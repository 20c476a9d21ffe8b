package contradiction

import (
	"fmt"
	"strings"

	"github.com/kiranb/doc-checker/internal/clause"
	"github.com/kiranb/doc-checker/pkg/models"
)

// Detector performs pairwise comparison of normalized clause values across
// documents. It holds no mutable state and is safe for concurrent use.
type Detector struct {
	classifier *Classifier
}

// NewDetector creates a detector classifying with the given classifier.
func NewDetector(classifier *Classifier) *Detector {
	return &Detector{classifier: classifier}
}

type instance struct {
	doc   models.Document
	match models.ClauseMatch
}

// Detect compares every unordered pair of documents holding a comparable
// value of the same clause type and returns one contradiction per firing
// pair. Documents are iterated in the order given, clause types in pattern
// library declaration order, so output is deterministic for identical input.
func (d *Detector) Detect(documents []models.Document) []models.Contradiction {
	if len(documents) < 2 {
		return nil
	}

	var contradictions []models.Contradiction

	for _, def := range clause.Library {
		compare, ok := compareFuncs[def.Compare]
		if !ok {
			continue
		}

		var instances []instance
		for _, doc := range documents {
			match, ok := doc.Clauses[def.Type]
			if !ok || !match.Value.Comparable() {
				continue
			}
			instances = append(instances, instance{doc: doc, match: match})
		}

		for i := 0; i < len(instances); i++ {
			for j := i + 1; j < len(instances); j++ {
				a, b := instances[i], instances[j]

				conflict, mag := compare(a.match.Value, b.match.Value)
				if !conflict {
					continue
				}

				contradictions = append(contradictions, models.Contradiction{
					Type:     def.Type,
					Severity: d.classifier.Classify(def.Type, mag),
					Summary:  summarize(def.Type, a, b),
					Documents: []models.DocumentValue{
						{DocumentID: a.doc.ID, Filename: a.doc.Filename, Value: a.match.RawText},
						{DocumentID: b.doc.ID, Filename: b.doc.Filename, Value: b.match.RawText},
					},
					Details: mag,
				})
			}
		}
	}

	return contradictions
}

func summarize(clauseType models.ClauseType, a, b instance) string {
	return fmt.Sprintf("%s: %q in %s vs %q in %s",
		titleize(clauseType), a.match.RawText, a.doc.Filename, b.match.RawText, b.doc.Filename)
}

func titleize(clauseType models.ClauseType) string {
	words := strings.Split(string(clauseType), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
