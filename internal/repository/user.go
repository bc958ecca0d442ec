// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/daskng/blog/internal/models"
)

// CreateUser inserts a new user and fills in its ID and creation time.
// A taken email is reported as ErrDuplicateEmail.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.Name, user.PasswordHash, user.IsAdmin, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID, err = res.LastInsertId()
	return err
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// UserExistsByEmail checks whether a verified user owns the address.
func (r *Repository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email)
	return exists, err
}

// CountUsers returns the total number of users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}
