// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/daskng/blog/internal/models"
)

// CreatePost inserts a new post and fills in its ID and creation time.
// A taken title is reported as ErrDuplicateTitle.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (author_id, title, subtitle, body, image_url, published_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.AuthorID, post.Title, post.Subtitle, post.Body, post.ImageURL, post.PublishedAt, post.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "posts.title") {
			return ErrDuplicateTitle
		}
		return err
	}

	post.ID, err = res.LastInsertId()
	return err
}

// GetPostByID retrieves a post with its author's name.
func (r *Repository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post,
		`SELECT p.*, u.name AS author_name
		 FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.id = ?`, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &post, nil
}

// ListPosts returns all posts with author names, newest first.
func (r *Repository) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts,
		`SELECT p.*, u.name AS author_name
		 FROM posts p JOIN users u ON u.id = p.author_id
		 ORDER BY p.published_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates the editable fields of a post. Authorship is never
// changed here. A taken title is reported as ErrDuplicateTitle.
func (r *Repository) UpdatePost(ctx context.Context, post *models.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, subtitle = ?, body = ?, image_url = ? WHERE id = ?`,
		post.Title, post.Subtitle, post.Body, post.ImageURL, post.ID)
	if err != nil {
		if isUniqueViolation(err, "posts.title") {
			return ErrDuplicateTitle
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post; its comments go with it via the schema's
// ON DELETE CASCADE.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
