package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// anyInsertArgs returns one wildcard matcher per insertLeadQuery placeholder;
// pgxmock only matches an expectation when the argument counts line up.
func anyInsertArgs() []any {
	args := make([]any, 28)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestPostgresInsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)
	now := time.Date(2025, 8, 27, 15, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(anyInsertArgs()...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_on", "updated_on"}).AddRow(int64(42), now, now))
	mock.ExpectCommit()

	stored, err := repo.Insert(context.Background(), validLead("evt-pg-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID != 42 {
		t.Errorf("expected id 42, got %d", stored.ID)
	}
	if !stored.CreatedOn.Equal(now) {
		t.Errorf("expected created_on %s, got %s", now, stored.CreatedOn)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresInsertDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(anyInsertArgs()...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "leads_event_id_key"})
	mock.ExpectRollback()

	if _, err := repo.Insert(context.Background(), validLead("evt-pg-dup")); !errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("expected ErrDuplicateEvent, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresInsertFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(anyInsertArgs()...).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = repo.Insert(context.Background(), validLead("evt-pg-err"))
	if err == nil || errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("expected generic insert error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresInsertValidates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)

	lead := validLead("")
	if _, err := repo.Insert(context.Background(), lead); !errors.Is(err, ErrMissingEventID) {
		t.Fatalf("expected ErrMissingEventID, got %v", err)
	}

	// No expectations: an invalid record must never reach the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestPostgresGetByEventIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)

	mock.ExpectQuery("FROM leads").
		WithArgs("evt-missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByEventID(context.Background(), "evt-missing"); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23502"}) {
		t.Error("not-null violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Error("plain error is not a unique violation")
	}
}
