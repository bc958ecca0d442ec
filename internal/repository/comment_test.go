// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/daskng/blog/internal/models"
	"github.com/daskng/blog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	author := testutil.NewTestUser(t, repo, "admin@x.com", "Admin", true)
	commenter := testutil.NewTestUser(t, repo, "user@x.com", "User", false)
	post := testutil.NewTestPost(t, repo, author.ID, "First Post")

	comment := &models.Comment{PostID: post.ID, AuthorID: commenter.ID, Body: "great read"}
	err := repo.CreateComment(context.Background(), comment)

	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
}

func TestListCommentsByPost_JoinsAuthor(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	author := testutil.NewTestUser(t, repo, "admin@x.com", "Admin", true)
	commenter := testutil.NewTestUser(t, repo, "user@x.com", "User", false)
	post := testutil.NewTestPost(t, repo, author.ID, "First Post")

	first := &models.Comment{PostID: post.ID, AuthorID: commenter.ID, Body: "first"}
	require.NoError(t, repo.CreateComment(context.Background(), first))
	second := &models.Comment{PostID: post.ID, AuthorID: author.ID, Body: "second"}
	require.NoError(t, repo.CreateComment(context.Background(), second))

	comments, err := repo.ListCommentsByPost(context.Background(), post.ID)

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Body)
	assert.Equal(t, "User", comments[0].AuthorName)
	assert.Equal(t, "user@x.com", comments[0].AuthorEmail)
	assert.Equal(t, "second", comments[1].Body)
}

func TestListCommentsByPost_Empty(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	author := testutil.NewTestUser(t, repo, "admin@x.com", "Admin", true)
	post := testutil.NewTestPost(t, repo, author.ID, "First Post")

	comments, err := repo.ListCommentsByPost(context.Background(), post.ID)

	require.NoError(t, err)
	assert.Empty(t, comments)
}
