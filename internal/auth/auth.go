package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReviewerExists     = errors.New("reviewer already exists")
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// Reviewer is an account allowed to upload documents and run analyses.
type Reviewer struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Claims are the JWT claims issued to a logged-in reviewer.
type Claims struct {
	ReviewerID string `json:"reviewer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// ReviewerRepository defines the interface for reviewer persistence.
type ReviewerRepository interface {
	Create(ctx context.Context, reviewer *Reviewer) error
	GetByEmail(ctx context.Context, email string) (*Reviewer, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// Config holds authentication configuration.
type Config struct {
	SecretKey string
	TokenTTL  time.Duration
}

// Service issues and validates reviewer tokens.
type Service struct {
	config Config
	repo   ReviewerRepository
}

// NewService creates the auth service. A zero TokenTTL defaults to 24 hours.
func NewService(config Config, repo ReviewerRepository) *Service {
	if config.TokenTTL == 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &Service{config: config, repo: repo}
}

// Register creates a reviewer account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (*Reviewer, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrReviewerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	reviewer := &Reviewer{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, reviewer); err != nil {
		return nil, err
	}

	return reviewer, nil
}

// Login checks credentials and returns a signed JWT.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	reviewer, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(reviewer.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update should not block login.
	_ = s.repo.TouchLogin(ctx, reviewer.ID, time.Now())

	return s.issueToken(reviewer)
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) issueToken(reviewer *Reviewer) (string, error) {
	now := time.Now()
	claims := &Claims{
		ReviewerID: reviewer.ID,
		Email:      reviewer.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}
