package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kiranb/doc-checker/internal/auth"
	"github.com/kiranb/doc-checker/internal/clause"
	"github.com/kiranb/doc-checker/internal/contradiction"
	"github.com/kiranb/doc-checker/internal/storage"
)

// ServerConfig holds the dependencies and settings for the HTTP server.
type ServerConfig struct {
	DB         *sql.DB
	JWTSecret  string
	Thresholds contradiction.Thresholds
	// MaxConcurrentExtractions bounds the per-document fan-out during
	// analysis. Zero means the default of 4.
	MaxConcurrentExtractions int
}

type Server struct {
	router *chi.Mux

	documentRepo      storage.DocumentRepository
	contradictionRepo storage.ContradictionRepository
	authService       *auth.Service

	extractor *clause.Extractor
	detector  *contradiction.Detector

	maxConcurrent int
}

// NewServer wires the repositories, the clause engine and the routes.
func NewServer(cfg ServerConfig) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	maxConcurrent := cfg.MaxConcurrentExtractions
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	s := &Server{
		router:            r,
		documentRepo:      storage.NewPostgresDocumentRepository(cfg.DB),
		contradictionRepo: storage.NewPostgresContradictionRepository(cfg.DB),
		authService: auth.NewService(auth.Config{
			SecretKey: cfg.JWTSecret,
		}, auth.NewPostgresRepository(cfg.DB)),
		extractor:     clause.NewExtractor(clause.NewRegexRecognizer()),
		detector:      contradiction.NewDetector(contradiction.NewClassifier(cfg.Thresholds)),
		maxConcurrent: maxConcurrent,
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.authService))

			r.Post("/documents", s.handleUpload)
			r.Get("/documents", s.handleListDocuments)
			r.Get("/documents/{documentID}", s.handleGetDocument)
			r.Delete("/documents/{documentID}", s.handleDeleteDocument)

			r.Post("/analyze", s.handleAnalyze)
			r.Get("/contradictions", s.handleGetContradictions)
			r.Get("/statistics", s.handleGetStatistics)
			r.Delete("/data", s.handleClearData)
		})
	})
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Helper to send JSON responses
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
