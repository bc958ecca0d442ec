// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package content enforces the authorization and validation rules around
// posts and comments. Handlers never touch the repository for writes
// directly; they go through here so the rules live in one place.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daskng/blog/internal/models"
	"github.com/daskng/blog/internal/repository"
)

var (
	// ErrForbidden is returned when the acting user lacks the required capability.
	ErrForbidden = errors.New("forbidden")
	// ErrTitleRequired is returned when a post has no title.
	ErrTitleRequired = errors.New("title is required")
	// ErrBodyRequired is returned when a post or comment has no body.
	ErrBodyRequired = errors.New("body is required")
)

// Service wraps the repository with authorization checks.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new content service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// GetPost returns a post with its author's name.
func (s *Service) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.repo.GetPostByID(ctx, id)
}

// ListPosts returns all posts, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.repo.ListPosts(ctx)
}

// ListComments returns a post's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.repo.ListCommentsByPost(ctx, postID)
}

// CreatePost publishes a new post on behalf of actor. Only admins may
// publish.
func (s *Service) CreatePost(ctx context.Context, actor *models.User, title, subtitle, body, imageURL string) (*models.Post, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if err := validatePost(title, body); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:    actor.ID,
		Title:       strings.TrimSpace(title),
		Subtitle:    strings.TrimSpace(subtitle),
		Body:        body,
		ImageURL:    strings.TrimSpace(imageURL),
		PublishedAt: time.Now().UTC(),
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("post_created", "post_id", post.ID, "author_id", actor.ID)
	return post, nil
}

// UpdatePost edits an existing post. The author and admins may edit;
// authorship and the publication date are never changed by an edit.
func (s *Service) UpdatePost(ctx context.Context, actor *models.User, id int64, title, subtitle, body, imageURL string) (*models.Post, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.ID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if err := validatePost(title, body); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(title)
	post.Subtitle = strings.TrimSpace(subtitle)
	post.Body = body
	post.ImageURL = strings.TrimSpace(imageURL)
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("post_updated", "post_id", post.ID, "actor_id", actor.ID)
	return post, nil
}

// DeletePost removes a post and its comments. Only admins may delete.
// The authorization check runs before any lookup so a forbidden caller
// causes no side effects and learns nothing about post existence.
func (s *Service) DeletePost(ctx context.Context, actor *models.User, id int64) error {
	if actor == nil || !actor.IsAdmin {
		return ErrForbidden
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}

	slog.Info("post_deleted", "post_id", id, "actor_id", actor.ID)
	return nil
}

// CreateComment adds a comment to a post. Any authenticated user may
// comment.
func (s *Service) CreateComment(ctx context.Context, actor *models.User, postID int64, body string) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}

	// Make sure the post exists before attaching a comment.
	if _, err := s.repo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: actor.ID,
		Body:     body,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

func validatePost(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(body) == "" {
		return ErrBodyRequired
	}
	return nil
}
