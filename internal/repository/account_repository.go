package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/csemotors/motors/internal/utils"
)

// Account mirrors the 'account' table. PasswordHash never leaves the auth
// handlers; it is stripped before any claims are embedded in a session token.
type Account struct {
	ID           uint64 // account.account_id
	FirstName    string // account.account_firstname
	LastName     string // account.account_lastname
	Email        string // account.account_email
	PasswordHash string // account.account_password
}

type AccountRepo struct{ db *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

// Create hashes the password and inserts the account, returning its ID.
func (r *AccountRepo) Create(ctx context.Context, firstName, lastName, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO account (account_firstname, account_lastname, account_email, account_password) VALUES (?,?,?,?)",
		firstName, lastName, email, hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email. sql.ErrNoRows passes
// through so the login handler can fold "no such account" and "wrong
// password" into the same generic message.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a Account
	err := r.db.QueryRowContext(ctx,
		"SELECT account_id, account_firstname, account_lastname, account_email, account_password FROM account WHERE account_email=? LIMIT 1",
		email).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash)
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (Account, error) {
	var a Account
	err := r.db.QueryRowContext(ctx,
		"SELECT account_id, account_firstname, account_lastname, account_email, account_password FROM account WHERE account_id=? LIMIT 1",
		id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash)
	return a, err
}
