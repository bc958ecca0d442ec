// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package auth handles password credentials and login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daskng/blog/internal/models"
	"github.com/daskng/blog/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUnknownEmail is returned when no account owns the address.
	ErrUnknownEmail = errors.New("unknown email address")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// dummyHash is used for constant-time login to prevent timing attacks.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Service authenticates users against the store.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new auth service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Login authenticates a user and returns the user if successful. The two
// failure reasons are distinct so the caller can show the same messages
// the application has always shown.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Always perform a bcrypt comparison to keep timing flat.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrUnknownEmail
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidPassword
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return user, nil
}
