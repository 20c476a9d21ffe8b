package api

import (
	"net/http"

	"github.com/kiranb/doc-checker/internal/contradiction"
	"github.com/kiranb/doc-checker/pkg/models"
)

// handleAnalyze runs the full pipeline over the current document set: clause
// maps are re-extracted for every document, contradictions detected, stored
// results replaced, and the report returned. The run is synchronous and
// deterministic for a given corpus.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	stored, err := s.documentRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch documents")
		return
	}

	documents := make([]models.Document, len(stored))
	for i, doc := range stored {
		documents[i] = doc.Model()
	}

	// Extraction per document is independent; fan out with a bounded
	// semaphore and join before detection. Each goroutine writes only its
	// own slot.
	sem := make(chan struct{}, s.maxConcurrent)
	done := make(chan int, len(documents))

	for i := range documents {
		sem <- struct{}{}
		go func(idx int) {
			defer func() { <-sem }()

			doc := &documents[idx]
			if doc.Status == models.StatusSuccess {
				doc.Clauses = s.extractor.Extract(doc.Text)
			} else {
				doc.Clauses = models.ClauseMap{}
			}
			done <- idx
		}(i)
	}
	for range documents {
		<-done
	}

	for i, doc := range documents {
		if err := s.documentRepo.UpdateClauses(r.Context(), stored[i].ID, doc.Status, doc.Clauses); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to save clause maps")
			return
		}
	}

	detected := s.detector.Detect(documents)
	report := contradiction.BuildReport(documents, detected)

	if err := s.contradictionRepo.ReplaceAll(r.Context(), report.Contradictions); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save contradictions")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// handleGetContradictions returns the results of the last analysis run.
func (s *Server) handleGetContradictions(w http.ResponseWriter, r *http.Request) {
	contradictions, err := s.contradictionRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch contradictions")
		return
	}

	if contradictions == nil {
		contradictions = []models.Contradiction{}
	}
	respondJSON(w, http.StatusOK, contradictions)
}

// StatisticsResponse summarizes the stored corpus and the last analysis.
type StatisticsResponse struct {
	TotalDocuments      int                       `json:"total_documents"`
	TotalContradictions int                       `json:"total_contradictions"`
	BySeverity          map[models.Severity]int   `json:"by_severity"`
	ByClauseType        map[models.ClauseType]int `json:"by_clause_type"`
}

// handleGetStatistics returns corpus-level counts.
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	docCount, err := s.documentRepo.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count documents")
		return
	}

	contradictions, err := s.contradictionRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch contradictions")
		return
	}

	stats := StatisticsResponse{
		TotalDocuments:      docCount,
		TotalContradictions: len(contradictions),
		BySeverity:          make(map[models.Severity]int),
		ByClauseType:        make(map[models.ClauseType]int),
	}
	for severity, group := range contradiction.GroupBySeverity(contradictions) {
		stats.BySeverity[severity] = len(group)
	}
	for clauseType, group := range contradiction.GroupByType(contradictions) {
		stats.ByClauseType[clauseType] = len(group)
	}

	respondJSON(w, http.StatusOK, stats)
}

// handleClearData removes all documents and contradictions.
func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request) {
	if err := s.contradictionRepo.DeleteAll(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear contradictions")
		return
	}
	if err := s.documentRepo.DeleteAll(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear documents")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
