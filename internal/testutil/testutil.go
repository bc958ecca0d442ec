// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/daskng/blog/internal/database"
	"github.com/daskng/blog/internal/models"
	"github.com/daskng/blog/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a user in the database. The password hash is a fixed
// dummy value; use the auth service helpers when real verification matters.
func NewTestUser(t *testing.T, repo *repository.Repository, email, name string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtestha",
		IsAdmin:      isAdmin,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestPost creates a post owned by the given author.
func NewTestPost(t *testing.T, repo *repository.Repository, authorID int64, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:    authorID,
		Title:       title,
		Subtitle:    "subtitle",
		Body:        "body text",
		ImageURL:    "https://example.com/img.png",
		PublishedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreatePost(context.Background(), post))
	return post
}
