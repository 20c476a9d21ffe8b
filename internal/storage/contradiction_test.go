package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kiranb/doc-checker/pkg/models"
)

func sampleContradictions() []models.Contradiction {
	return []models.Contradiction{
		{
			ID:       1,
			Type:     models.ClauseSalary,
			Severity: models.SeverityHigh,
			Summary:  `Salary: "$75,000" in a.txt vs "$85,000" in b.txt`,
			Documents: []models.DocumentValue{
				{DocumentID: "doc-a", Filename: "a.txt", Value: "$75,000"},
				{DocumentID: "doc-b", Filename: "b.txt", Value: "$85,000"},
			},
			Details: models.Magnitude{Method: "numeric", AbsoluteDiff: 10000, PercentDiff: 11.76},
		},
		{
			ID:       2,
			Type:     models.ClauseNoticePeriod,
			Severity: models.SeverityMedium,
			Summary:  `Notice Period: "14 days notice" in a.txt vs "21 days notice" in b.txt`,
			Documents: []models.DocumentValue{
				{DocumentID: "doc-a", Filename: "a.txt", Value: "14 days notice"},
				{DocumentID: "doc-b", Filename: "b.txt", Value: "21 days notice"},
			},
			Details: models.Magnitude{Method: "duration", AbsoluteDiff: 7},
		},
	}
}

func TestPostgresContradictionRepository_ReplaceAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresContradictionRepository(db)
	contradictions := sampleContradictions()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contradictions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	for _, c := range contradictions {
		mock.ExpectExec("INSERT INTO contradictions").
			WithArgs(sqlmock.AnyArg(), c.ID, string(c.Type), string(c.Severity), c.Summary,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err = repo.ReplaceAll(context.Background(), contradictions)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresContradictionRepository_ReplaceAll_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresContradictionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contradictions").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err = repo.ReplaceAll(context.Background(), nil)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresContradictionRepository_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresContradictionRepository(db)

	documents := []byte(`[{"document_id":"doc-a","filename":"a.txt","value":"$75,000"},{"document_id":"doc-b","filename":"b.txt","value":"$85,000"}]`)
	details := []byte(`{"method":"numeric","absolute_diff":10000,"percent_diff":11.76}`)

	rows := sqlmock.NewRows([]string{"seq", "clause_type", "severity", "summary", "documents", "details"}).
		AddRow(1, "salary", "high", `Salary: "$75,000" in a.txt vs "$85,000" in b.txt`, documents, details)

	mock.ExpectQuery("SELECT (.+) FROM contradictions ORDER BY seq").
		WillReturnRows(rows)

	contradictions, err := repo.GetAll(context.Background())
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if len(contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(contradictions))
	}

	c := contradictions[0]
	if c.ID != 1 || c.Type != models.ClauseSalary || c.Severity != models.SeverityHigh {
		t.Errorf("unexpected contradiction: %+v", c)
	}
	if len(c.Documents) != 2 || c.Documents[0].Filename != "a.txt" {
		t.Errorf("expected decoded document values, got %+v", c.Documents)
	}
	if c.Details.PercentDiff != 11.76 {
		t.Errorf("expected decoded details, got %+v", c.Details)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresContradictionRepository_DeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer db.Close()

	repo := NewPostgresContradictionRepository(db)

	mock.ExpectExec("DELETE FROM contradictions").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.DeleteAll(context.Background()); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
