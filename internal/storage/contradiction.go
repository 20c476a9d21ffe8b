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

// ContradictionRepository persists the results of an analysis run. A re-run
// replaces prior results rather than patching them.
type ContradictionRepository interface {
	ReplaceAll(ctx context.Context, contradictions []models.Contradiction) error
	GetAll(ctx context.Context) ([]models.Contradiction, error)
	DeleteAll(ctx context.Context) error
}

// PostgresContradictionRepository implements ContradictionRepository using
// PostgreSQL.
type PostgresContradictionRepository struct {
	db *sql.DB
}

// NewPostgresContradictionRepository creates a new PostgresContradictionRepository.
func NewPostgresContradictionRepository(db *sql.DB) *PostgresContradictionRepository {
	return &PostgresContradictionRepository{db: db}
}

// ReplaceAll atomically swaps the stored result set for the given one.
func (r *PostgresContradictionRepository) ReplaceAll(ctx context.Context, contradictions []models.Contradiction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contradictions`); err != nil {
		return err
	}

	query := `
		INSERT INTO contradictions (id, seq, clause_type, severity, summary, documents, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()

	for _, c := range contradictions {
		documents, err := json.Marshal(c.Documents)
		if err != nil {
			return fmt.Errorf("encode contradiction documents: %w", err)
		}
		details, err := json.Marshal(c.Details)
		if err != nil {
			return fmt.Errorf("encode contradiction details: %w", err)
		}

		_, err = tx.ExecContext(ctx, query,
			uuid.New(),
			c.ID,
			string(c.Type),
			string(c.Severity),
			c.Summary,
			documents,
			details,
			now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetAll retrieves the stored contradictions in report order.
func (r *PostgresContradictionRepository) GetAll(ctx context.Context) ([]models.Contradiction, error) {
	query := `
		SELECT seq, clause_type, severity, summary, documents, details
		FROM contradictions
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contradictions []models.Contradiction
	for rows.Next() {
		var (
			c         models.Contradiction
			documents []byte
			details   []byte
		)
		if err := rows.Scan(&c.ID, &c.Type, &c.Severity, &c.Summary, &documents, &details); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(documents, &c.Documents); err != nil {
			return nil, fmt.Errorf("decode contradiction documents: %w", err)
		}
		if err := json.Unmarshal(details, &c.Details); err != nil {
			return nil, fmt.Errorf("decode contradiction details: %w", err)
		}
		contradictions = append(contradictions, c)
	}

	return contradictions, rows.Err()
}

// DeleteAll removes every stored contradiction.
func (r *PostgresContradictionRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contradictions`)
	return err
}
