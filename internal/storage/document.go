package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kiranb/doc-checker/pkg/models"
)

// Document is a stored document with its extracted clause map.
type Document struct {
	ID          uuid.UUID
	Filename    string
	Content     string
	ContentHash string
	Status      string
	Clauses     models.ClauseMap
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentRepository defines the interface for document storage operations.
type DocumentRepository interface {
	Create(ctx context.Context, document *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	GetAll(ctx context.Context) ([]*Document, error)
	GetByHash(ctx context.Context, hash string) (*Document, error)
	UpdateClauses(ctx context.Context, id uuid.UUID, status string, clauses models.ClauseMap) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// PostgresDocumentRepository implements DocumentRepository using PostgreSQL.
type PostgresDocumentRepository struct {
	db *sql.DB
}

// NewPostgresDocumentRepository creates a new PostgresDocumentRepository.
func NewPostgresDocumentRepository(db *sql.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

// Create inserts a new document with its clause map.
func (r *PostgresDocumentRepository) Create(ctx context.Context, document *Document) error {
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}

	now := time.Now()
	if document.CreatedAt.IsZero() {
		document.CreatedAt = now
	}
	if document.UpdatedAt.IsZero() {
		document.UpdatedAt = now
	}

	clauses, err := marshalClauses(document.Clauses)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (id, filename, content, content_hash, status, clauses, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		document.ID,
		document.Filename,
		document.Content,
		document.ContentHash,
		document.Status,
		clauses,
		document.CreatedAt,
		document.UpdatedAt,
	)

	return err
}

// GetByID retrieves a document by its ID.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	query := `
		SELECT id, filename, content, content_hash, status, clauses, created_at, updated_at
		FROM documents
		WHERE id = $1
	`

	return scanDocument(r.db.QueryRowContext(ctx, query, id))
}

// GetAll retrieves all documents in insertion order, which fixes the
// document iteration order seen by the analysis pipeline.
func (r *PostgresDocumentRepository) GetAll(ctx context.Context) ([]*Document, error) {
	query := `
		SELECT id, filename, content, content_hash, status, clauses, created_at, updated_at
		FROM documents
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*Document
	for rows.Next() {
		document, err := scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	return documents, rows.Err()
}

// GetByHash retrieves a document by its content hash.
func (r *PostgresDocumentRepository) GetByHash(ctx context.Context, hash string) (*Document, error) {
	query := `
		SELECT id, filename, content, content_hash, status, clauses, created_at, updated_at
		FROM documents
		WHERE content_hash = $1
	`

	return scanDocument(r.db.QueryRowContext(ctx, query, hash))
}

// UpdateClauses replaces a document's clause map and status after re-analysis.
func (r *PostgresDocumentRepository) UpdateClauses(ctx context.Context, id uuid.UUID, status string, clauses models.ClauseMap) error {
	payload, err := marshalClauses(clauses)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET status = $2, clauses = $3, updated_at = $4
		WHERE id = $1
	`

	_, err = r.db.ExecContext(ctx, query, id, status, payload, time.Now())
	return err
}

// Delete removes a document.
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// DeleteAll removes every document.
func (r *PostgresDocumentRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM documents`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Count returns the number of stored documents.
func (r *PostgresDocumentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row *sql.Row) (*Document, error) {
	document, err := scanDocumentRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return document, nil
}

func scanDocumentRow(row rowScanner) (*Document, error) {
	document := &Document{}
	var clauses []byte

	err := row.Scan(
		&document.ID,
		&document.Filename,
		&document.Content,
		&document.ContentHash,
		&document.Status,
		&clauses,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(clauses) > 0 {
		if err := json.Unmarshal(clauses, &document.Clauses); err != nil {
			return nil, fmt.Errorf("decode clause map: %w", err)
		}
	}

	return document, nil
}

func marshalClauses(clauses models.ClauseMap) ([]byte, error) {
	if clauses == nil {
		clauses = models.ClauseMap{}
	}
	payload, err := json.Marshal(clauses)
	if err != nil {
		return nil, fmt.Errorf("encode clause map: %w", err)
	}
	return payload, nil
}

// Model converts the stored document to the engine's document value.
func (d *Document) Model() models.Document {
	return models.Document{
		ID:        d.ID.String(),
		Filename:  d.Filename,
		Text:      d.Content,
		Status:    d.Status,
		Clauses:   d.Clauses,
		CreatedAt: d.CreatedAt,
	}
}
