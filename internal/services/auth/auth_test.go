// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"testing"

	"github.com/daskng/blog/internal/models"
	"github.com/daskng/blog/internal/services/auth"
	"github.com/daskng/blog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery")

	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)
	assert.True(t, auth.CheckPassword(hash, "correct horse battery"))
	assert.False(t, auth.CheckPassword(hash, "wrong password"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "sturdy-pw1", false},
		{"too short", "short", true},
		{"entirely numeric", "1234567890", true},
		{"empty", "", true},
		{"long numeric with letter", "12345678a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidatePassword(tt.password)
			if tt.wantErr {
				require.ErrorIs(t, err, auth.ErrWeakPassword)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func newLoginFixture(t *testing.T) (*auth.Service, *models.User) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)

	hash, err := auth.HashPassword("pw123secret")
	require.NoError(t, err)

	user := &models.User{Email: "a@x.com", Name: "A", PasswordHash: hash}
	require.NoError(t, repo.CreateUser(context.Background(), user))

	return auth.NewService(repo), user
}

func TestLogin(t *testing.T) {
	svc, created := newLoginFixture(t)

	user, err := svc.Login(context.Background(), "a@x.com", "pw123secret")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), "nobody@x.com", "pw123secret")

	require.ErrorIs(t, err, auth.ErrUnknownEmail)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), "a@x.com", "not-the-password")

	require.ErrorIs(t, err, auth.ErrInvalidPassword)
}
