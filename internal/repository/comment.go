// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/daskng/blog/internal/models"
)

// CreateComment inserts a new comment and fills in its ID and creation time.
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, author_id, body, created_at) VALUES (?, ?, ?, ?)`,
		comment.PostID, comment.AuthorID, comment.Body, comment.CreatedAt)
	if err != nil {
		return err
	}

	comment.ID, err = res.LastInsertId()
	return err
}

// ListCommentsByPost returns a post's comments with author name and email
// (the email feeds gravatar rendering), oldest first.
func (r *Repository) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments,
		`SELECT c.*, u.name AS author_name, u.email AS author_email
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = ?
		 ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountCommentsByPost returns the number of comments on a post.
func (r *Repository) CountCommentsByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID)
	return count, err
}
