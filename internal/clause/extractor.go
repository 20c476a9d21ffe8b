package clause

import (
	"strings"

	"github.com/kiranb/doc-checker/pkg/models"
)

// Extractor turns one document's plain text into a clause map using the
// pattern library, optionally assisted by an entity recognizer. It is a pure
// function of its input: no state is carried between documents.
type Extractor struct {
	recognizer Recognizer
}

// NewExtractor creates an extractor. A nil recognizer degrades extraction to
// pattern-only matching; it never fails a document.
func NewExtractor(recognizer Recognizer) *Extractor {
	return &Extractor{recognizer: recognizer}
}

// Extract scans the document sentence by sentence and returns at most one
// ClauseMatch per clause type. Earlier sentences win over later ones; clause
// types with no candidate are absent from the map. Empty text yields an empty
// map, never an error.
func (e *Extractor) Extract(text string) models.ClauseMap {
	clauses := make(models.ClauseMap)

	cleaned := CleanText(text)
	if cleaned == "" {
		return clauses
	}
	sentences := SplitSentences(cleaned)

	for _, def := range Library {
		var match *models.ClauseMatch

		if def.Multi {
			match = e.extractAll(def, sentences)
		} else {
			match = e.extractFirst(def, sentences)
		}

		if match == nil && e.recognizer != nil && def.Entity != "" {
			match = e.extractWithEntities(def, sentences)
		}

		if match != nil {
			clauses[def.Type] = *match
		}
	}

	return clauses
}

// extractFirst returns the first pattern match in sentence order. Pattern
// priority only breaks ties within a single sentence.
func (e *Extractor) extractFirst(def Definition, sentences []string) *models.ClauseMatch {
	for _, sentence := range sentences {
		for _, pattern := range def.Patterns {
			raw := pattern.FindString(sentence)
			if raw == "" {
				continue
			}
			return &models.ClauseMatch{
				Type:       def.Type,
				RawText:    raw,
				Value:      def.Normalize(raw),
				Sentence:   sentence,
				Confidence: models.ConfidencePattern,
			}
		}
	}
	return nil
}

// extractAll aggregates every pattern match across the document into one
// candidate; the normalizer turns the combined raw text into a set.
func (e *Extractor) extractAll(def Definition, sentences []string) *models.ClauseMatch {
	var matches []string
	evidence := ""

	for _, sentence := range sentences {
		found := false
		for _, pattern := range def.Patterns {
			for _, raw := range pattern.FindAllString(sentence, -1) {
				matches = append(matches, raw)
				found = true
			}
		}
		if found && evidence == "" {
			evidence = sentence
		}
	}

	if len(matches) == 0 {
		return nil
	}

	raw := strings.Join(matches, "; ")
	return &models.ClauseMatch{
		Type:       def.Type,
		RawText:    raw,
		Value:      def.Normalize(raw),
		Sentence:   evidence,
		Confidence: models.ConfidencePattern,
	}
}

// extractWithEntities asks the recognizer for entities of the definition's
// kind in sentences that mention one of its keywords. Entity-assisted
// candidates rank below pattern matches and are only used when no pattern
// fired.
func (e *Extractor) extractWithEntities(def Definition, sentences []string) *models.ClauseMatch {
	if def.Multi {
		return e.entityDateSet(def, sentences)
	}

	for _, sentence := range sentences {
		if !containsKeyword(sentence, def.Keywords) {
			continue
		}
		for _, span := range e.recognizer.Recognize(sentence) {
			if span.Kind != def.Entity {
				continue
			}
			return &models.ClauseMatch{
				Type:       def.Type,
				RawText:    span.Text,
				Value:      def.Normalize(span.Text),
				Sentence:   sentence,
				Confidence: models.ConfidenceEntity,
			}
		}
	}
	return nil
}

func (e *Extractor) entityDateSet(def Definition, sentences []string) *models.ClauseMatch {
	var spans []string
	evidence := ""

	for _, sentence := range sentences {
		if !containsKeyword(sentence, def.Keywords) {
			continue
		}
		for _, span := range e.recognizer.Recognize(sentence) {
			if span.Kind != def.Entity {
				continue
			}
			spans = append(spans, span.Text)
			if evidence == "" {
				evidence = sentence
			}
		}
	}

	if len(spans) == 0 {
		return nil
	}

	raw := strings.Join(spans, "; ")
	return &models.ClauseMatch{
		Type:       def.Type,
		RawText:    raw,
		Value:      def.Normalize(raw),
		Sentence:   evidence,
		Confidence: models.ConfidenceEntity,
	}
}

func containsKeyword(sentence string, keywords []string) bool {
	lower := strings.ToLower(sentence)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
