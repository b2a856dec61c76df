package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/csemotors/motors/internal/utils"
)

func newTestAccountRepo(t *testing.T) (*AccountRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewAccountRepo(db), mock
}

func TestAccountCreateNormalizesEmailAndHashes(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec("INSERT INTO account").
		WithArgs("Ada", "Lovelace", "ada@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := repo.Create(context.Background(), "Ada", "Lovelace", "  Ada@Example.COM ", "Correct#Horse9", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 11 {
		t.Errorf("expected id=11, got %d", id)
	}
}

func TestAccountCreateDuplicateEmail(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec("INSERT INTO account").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ada@example.com' for key 'uq_account_email'"))

	_, err := repo.Create(context.Background(), "Ada", "Lovelace", "ada@example.com", "Correct#Horse9", 4)
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAccountGetByEmail(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	hash, err := utils.HashPassword("Correct#Horse9", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	rows := sqlmock.
		NewRows([]string{"account_id", "account_firstname", "account_lastname", "account_email", "account_password"}).
		AddRow(11, "Ada", "Lovelace", "ada@example.com", hash)
	mock.ExpectQuery("SELECT account_id").
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	a, err := repo.GetByEmail(context.Background(), "Ada@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != 11 || a.FirstName != "Ada" {
		t.Errorf("unexpected account: %+v", a)
	}
	if !utils.VerifyPassword(a.PasswordHash, "Correct#Horse9") {
		t.Errorf("stored hash does not verify")
	}
}

func TestAccountGetByEmailMissing(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT account_id").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "account_firstname", "account_lastname", "account_email", "account_password"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
