// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package verification implements the email-code signup flow: one-time
// codes held in short-lived per-session state with expiry, attempt
// limiting and a resend cooldown. A user row is only created once the
// code is confirmed.
package verification

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/daskng/blog/internal/models"
	"github.com/daskng/blog/internal/repository"
	"github.com/daskng/blog/internal/services/auth"
)

const (
	// TTL is how long a pending registration stays valid.
	TTL = 600 * time.Second
	// MaxAttempts is the number of code submissions allowed per pending
	// registration. Resending a code does NOT reset the counter; otherwise
	// resends could be used to bypass the limit.
	MaxAttempts = 5
	// ResendCooldown is the minimum wait between two code emails.
	ResendCooldown = 60 * time.Second
)

var (
	// ErrEmailTaken is returned when a verified account already owns the address.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNoPending is returned when the session has no registration in progress.
	ErrNoPending = errors.New("no pending registration")
	// ErrExpired is returned when the pending registration outlived TTL.
	// The state is discarded; the caller must re-register.
	ErrExpired = errors.New("verification code expired")
	// ErrTooManyAttempts is returned when the attempt budget is exhausted.
	// The state is discarded; the caller must re-register.
	ErrTooManyAttempts = errors.New("too many verification attempts")
	// ErrResendCooldown is returned when a resend comes too soon.
	ErrResendCooldown = errors.New("resend requested too soon")
	// ErrDispatchFailed is returned when the code email could not be sent.
	// The pending state is kept so the caller can retry with a resend.
	ErrDispatchFailed = errors.New("could not send verification email")
)

// CodeMismatchError reports a wrong code along with the remaining attempt
// budget. The pending state is retained.
type CodeMismatchError struct {
	Remaining int
}

func (e *CodeMismatchError) Error() string {
	return fmt.Sprintf("code mismatch, %d attempts remaining", e.Remaining)
}

// Sender dispatches a verification code to an address.
type Sender interface {
	SendVerificationCode(to, code string) error
}

// Service drives the registration state machine. Pending registrations are
// keyed by session ID and are never visible to another session.
type Service struct {
	repo   *repository.Repository
	sender Sender

	mu      sync.Mutex
	pending map[string]*models.PendingRegistration
}

// NewService creates a new verification service.
func NewService(repo *repository.Repository, sender Sender) *Service {
	return &Service{
		repo:    repo,
		sender:  sender,
		pending: make(map[string]*models.PendingRegistration),
	}
}

// Start begins a registration: it records the pending state for the
// session, generates a code and dispatches it. A dispatch failure keeps
// the pending state (the caller offers a resend) and reports
// ErrDispatchFailed.
func (s *Service) Start(ctx context.Context, sessionID, email, password, name string) (*models.PendingRegistration, error) {
	exists, err := s.repo.UserExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &models.PendingRegistration{
		Email:        email,
		Password:     password,
		Name:         name,
		Code:         code,
		CreatedAt:    now,
		LastResendAt: now,
	}

	s.mu.Lock()
	s.pending[sessionID] = p
	s.mu.Unlock()

	slog.Info("registration_started", "email", email)

	// Dispatch outside the lock; a slow relay must not stall other sessions.
	if err := s.sender.SendVerificationCode(email, code); err != nil {
		slog.Error("verification_dispatch_failed", "email", email, "error", err)
		return p, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	return p, nil
}

// Pending returns the session's registration in progress, if any.
func (s *Service) Pending(sessionID string) (*models.PendingRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[sessionID]
	return p, ok
}

// Discard drops the session's pending registration.
func (s *Service) Discard(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, sessionID)
}

// Submit checks a candidate code. On success the pending registration is
// promoted into a persisted user (the password is hashed only now) and the
// caller may log the user in. Expiry and attempt exhaustion both discard
// the state, forcing re-registration; a plain mismatch retains it.
func (s *Service) Submit(ctx context.Context, sessionID, candidate string) (*models.User, error) {
	s.mu.Lock()
	p, ok := s.pending[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoPending
	}

	if time.Since(p.CreatedAt) > TTL {
		delete(s.pending, sessionID)
		s.mu.Unlock()
		slog.Info("verification_expired", "email", p.Email)
		return nil, ErrExpired
	}

	p.Attempts++
	if p.Attempts > MaxAttempts {
		delete(s.pending, sessionID)
		s.mu.Unlock()
		slog.Warn("verification_attempts_exhausted", "email", p.Email)
		return nil, ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(candidate), []byte(p.Code)) != 1 {
		remaining := MaxAttempts - p.Attempts
		s.mu.Unlock()
		return nil, &CodeMismatchError{Remaining: remaining}
	}

	email, password, name := p.Email, p.Password, p.Name
	s.mu.Unlock()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The very first verified account gets the admin capability.
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      count == 0,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Someone else verified the address first.
			s.Discard(sessionID)
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Discard(sessionID)
	slog.Info("registration_verified", "user_id", user.ID, "email", email)
	return user, nil
}

// Resend rotates the code and dispatches it again. The old code is
// invalidated even if dispatch fails; the attempt counter is left alone.
func (s *Service) Resend(_ context.Context, sessionID string) (*models.PendingRegistration, error) {
	s.mu.Lock()
	p, ok := s.pending[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoPending
	}

	if time.Since(p.LastResendAt) < ResendCooldown {
		s.mu.Unlock()
		return nil, ErrResendCooldown
	}

	code, err := GenerateCode()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	p.Code = code
	p.LastResendAt = time.Now()
	email := p.Email
	s.mu.Unlock()

	slog.Info("verification_resend", "email", email)

	if err := s.sender.SendVerificationCode(email, code); err != nil {
		slog.Error("verification_dispatch_failed", "email", email, "error", err)
		return p, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	return p, nil
}
