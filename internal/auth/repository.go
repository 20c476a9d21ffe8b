package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresRepository implements ReviewerRepository using PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL reviewer repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new reviewer.
func (r *PostgresRepository) Create(ctx context.Context, reviewer *Reviewer) error {
	if reviewer.ID == "" {
		reviewer.ID = uuid.New().String()
	}
	if reviewer.CreatedAt.IsZero() {
		reviewer.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO reviewers (id, email, password_hash, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		reviewer.ID,
		reviewer.Email,
		reviewer.PasswordHash,
		reviewer.CreatedAt,
		reviewer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reviewer: %w", err)
	}

	return nil
}

// GetByEmail retrieves a reviewer by email address.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Reviewer, error) {
	query := `
		SELECT id, email, password_hash, created_at, last_login_at
		FROM reviewers
		WHERE email = $1
	`

	reviewer := &Reviewer{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&reviewer.ID,
		&reviewer.Email,
		&reviewer.PasswordHash,
		&reviewer.CreatedAt,
		&reviewer.LastLoginAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReviewerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reviewer by email: %w", err)
	}

	return reviewer, nil
}

// TouchLogin records the reviewer's most recent login time.
func (r *PostgresRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE reviewers SET last_login_at = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, at)
	return err
}
