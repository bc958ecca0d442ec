// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package repository provides sqlx-backed access to users, posts and
// comments.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/vinovest/sqlx"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateTitle is returned when a post title is already taken.
	ErrDuplicateTitle = errors.New("post title already exists")
)

// Repository wraps the database connection for all persistence operations.
type Repository struct {
	db *sqlx.DB
}

// New creates a new Repository instance.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying connection for direct access.
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// wrapNotFound converts sql.ErrNoRows to ErrNotFound.
func wrapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint failure on
// the given table.column. SQLite names the offending columns in the error
// message, so string matching is the stable way to tell constraints apart
// without importing driver internals.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
