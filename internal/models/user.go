// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package models

import "time"

// User is a verified account. Rows are only created after the owner has
// proven control of the email address.
type User struct { //nolint:govet // fieldalignment not critical for models
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
