package api

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kiranb/doc-checker/internal/storage"
	"github.com/kiranb/doc-checker/internal/textextract"
	"github.com/kiranb/doc-checker/pkg/models"
)

const maxUploadSize = 20 << 20 // 20 MB across all files in one request

// UploadResult describes the outcome for one uploaded file.
type UploadResult struct {
	DocumentID string `json:"document_id,omitempty"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	Clauses    int    `json:"clauses"`
}

// handleUpload accepts one or more document files, extracts their text and
// clause maps, and stores them. A failure on one file never rejects the rest.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "upload too large or invalid form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	results := make([]UploadResult, 0, len(files))
	for _, header := range files {
		results = append(results, s.ingestFile(r, header))
	}

	respondJSON(w, http.StatusCreated, results)
}

func (s *Server) ingestFile(r *http.Request, header *multipart.FileHeader) UploadResult {
	result := UploadResult{Filename: header.Filename}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !textextract.SupportedExtensions[ext] {
		result.Status = models.StatusFailed
		result.Error = "unsupported file type, use .pdf, .docx, .txt or .md"
		return result
	}

	file, err := header.Open()
	if err != nil {
		result.Status = models.StatusFailed
		result.Error = "failed to open file"
		return result
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		result.Status = models.StatusFailed
		result.Error = "failed to read file"
		return result
	}

	hash := sha256.Sum256(data)
	hashStr := hex.EncodeToString(hash[:])

	existing, err := s.documentRepo.GetByHash(r.Context(), hashStr)
	if err != nil {
		result.Status = models.StatusFailed
		result.Error = "failed to check existing documents"
		return result
	}
	if existing != nil {
		result.DocumentID = existing.ID.String()
		result.Status = "exists"
		result.Clauses = len(existing.Clauses)
		return result
	}

	doc := &storage.Document{
		Filename:    header.Filename,
		ContentHash: hashStr,
	}

	text, err := textextract.Extract(header.Filename, data)
	if err != nil {
		// Text extraction failures are recorded, not fatal: the document is
		// kept with a failed status and an empty clause map.
		doc.Status = models.StatusFailed
		doc.Clauses = models.ClauseMap{}
		result.Error = err.Error()
	} else {
		doc.Status = models.StatusSuccess
		doc.Content = text
		doc.Clauses = s.extractor.Extract(text)
	}

	if err := s.documentRepo.Create(r.Context(), doc); err != nil {
		result.Status = models.StatusFailed
		result.Error = "failed to save document"
		return result
	}

	result.DocumentID = doc.ID.String()
	result.Status = doc.Status
	result.Clauses = len(doc.Clauses)
	return result
}

// DocumentResponse is the listing form of a stored document.
type DocumentResponse struct {
	ID       string           `json:"id"`
	Filename string           `json:"filename"`
	Status   string           `json:"status"`
	Clauses  models.ClauseMap `json:"clauses"`
}

// handleListDocuments lists all stored documents with their clause maps.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documentRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch documents")
		return
	}

	response := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, DocumentResponse{
			ID:       doc.ID.String(),
			Filename: doc.Filename,
			Status:   doc.Status,
			Clauses:  doc.Clauses,
		})
	}

	respondJSON(w, http.StatusOK, response)
}

// handleGetDocument returns one document with its clause map.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	did, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := s.documentRepo.GetByID(r.Context(), did)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch document")
		return
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "document not found")
		return
	}

	respondJSON(w, http.StatusOK, DocumentResponse{
		ID:       doc.ID.String(),
		Filename: doc.Filename,
		Status:   doc.Status,
		Clauses:  doc.Clauses,
	})
}

// handleDeleteDocument deletes a document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	did, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := s.documentRepo.Delete(r.Context(), did); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
