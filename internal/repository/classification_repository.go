// Package repository contains data access logic separated from HTTP
// handlers. This file defines the Classification model and repository
// methods. A Classification is a vehicle category (SUV, Truck, ...) used for
// grouping, navigation and the add/edit inventory dropdown.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Classification mirrors the 'classification' table.
type Classification struct {
	ID   uint64 // classification.classification_id
	Name string // classification.classification_name
}

// ClassificationRepo encapsulates all database queries related to
// classifications. It depends on a sql.DB connection which should be
// configured elsewhere.
type ClassificationRepo struct {
	db *sql.DB
}

// NewClassificationRepo constructs a ClassificationRepo with the provided DB
// handle. This allows dependency injection of the database in tests and at
// startup.
func NewClassificationRepo(db *sql.DB) *ClassificationRepo {
	return &ClassificationRepo{db: db}
}

// List returns all classifications ordered by name. The result feeds the
// navigation menu and the classification dropdown.
func (r *ClassificationRepo) List(ctx context.Context) ([]*Classification, error) {
	const q = `SELECT classification_id, classification_name
	           FROM classification ORDER BY classification_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Classification
	for rows.Next() {
		c := new(Classification)
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a classification by its id. It returns
// ErrClassificationNotFound if no row is found.
func (r *ClassificationRepo) GetByID(ctx context.Context, id uint64) (*Classification, error) {
	const q = `SELECT classification_id, classification_name
	           FROM classification WHERE classification_id = ?`
	var c Classification
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassificationNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new classification and returns its generated id. A
// duplicate name is reported as ErrClassificationExists so the handler can
// re-render the form instead of surfacing a raw driver error.
func (r *ClassificationRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO classification (classification_name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrClassificationExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
