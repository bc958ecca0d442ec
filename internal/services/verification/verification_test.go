// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package verification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskng/blog/internal/services/auth"
	"github.com/daskng/blog/internal/testutil"
)

type fakeSender struct {
	codes []string
	err   error
}

func (f *fakeSender) SendVerificationCode(to, code string) error {
	if f.err != nil {
		return f.err
	}
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeSender) lastCode() string {
	return f.codes[len(f.codes)-1]
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	for range 20 {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in code %q", r, code)
		}
	}
}

func TestRegistrationFlow(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	sender := &fakeSender{}
	svc := NewService(repo, sender)
	ctx := context.Background()

	p, err := svc.Start(ctx, "sess-1", "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)
	require.Len(t, sender.codes, 1)
	assert.Equal(t, sender.lastCode(), p.Code)

	// A wrong code keeps the pending state and reports the budget left.
	wrong := "000000"
	if wrong == p.Code {
		wrong = "000001"
	}
	_, err = svc.Submit(ctx, "sess-1", wrong)
	var mismatch *CodeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 4, mismatch.Remaining)

	user, err := svc.Submit(ctx, "sess-1", p.Code)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "correct horse"))
	assert.True(t, user.IsAdmin, "first verified account becomes admin")

	// The pending state is gone after promotion.
	_, err = svc.Submit(ctx, "sess-1", p.Code)
	assert.ErrorIs(t, err, ErrNoPending)

	// The second verified account is a regular user.
	p2, err := svc.Start(ctx, "sess-2", "grace@example.com", "another pass", "Grace")
	require.NoError(t, err)
	user2, err := svc.Submit(ctx, "sess-2", p2.Code)
	require.NoError(t, err)
	assert.False(t, user2.IsAdmin)
}

func TestStartEmailTaken(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "taken@example.com", "Taken", false)
	svc := NewService(repo, &fakeSender{})

	_, err := svc.Start(context.Background(), "sess-1", "taken@example.com", "secret123", "Someone")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, ok := svc.Pending("sess-1")
	assert.False(t, ok)
}

func TestSubmitExpired(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	svc := NewService(repo, &fakeSender{})
	ctx := context.Background()

	p, err := svc.Start(ctx, "sess-1", "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	p.CreatedAt = time.Now().Add(-TTL - time.Second)

	_, err = svc.Submit(ctx, "sess-1", p.Code)
	assert.ErrorIs(t, err, ErrExpired)

	// Expiry discards the state; re-registration is required.
	_, err = svc.Submit(ctx, "sess-1", p.Code)
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestSubmitAttemptLimit(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	svc := NewService(repo, &fakeSender{})
	ctx := context.Background()

	p, err := svc.Start(ctx, "sess-1", "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == p.Code {
		wrong = "000001"
	}

	for i := 1; i <= MaxAttempts; i++ {
		_, err = svc.Submit(ctx, "sess-1", wrong)
		var mismatch *CodeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, MaxAttempts-i, mismatch.Remaining)
	}

	// Even the correct code fails once the budget is exhausted.
	_, err = svc.Submit(ctx, "sess-1", p.Code)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	_, err = svc.Submit(ctx, "sess-1", p.Code)
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestResend(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	sender := &fakeSender{}
	svc := NewService(repo, sender)
	ctx := context.Background()

	p, err := svc.Start(ctx, "sess-1", "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)
	first := p.Code

	// Too soon after the initial dispatch.
	_, err = svc.Resend(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrResendCooldown)
	assert.Equal(t, first, p.Code, "cooldown leaves the active code alone")

	p.LastResendAt = time.Now().Add(-ResendCooldown - time.Second)

	p2, err := svc.Resend(ctx, "sess-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, p2.Code)
	assert.Equal(t, sender.lastCode(), p2.Code)

	// The old code no longer verifies.
	if first != p2.Code {
		_, err = svc.Submit(ctx, "sess-1", first)
		var mismatch *CodeMismatchError
		require.ErrorAs(t, err, &mismatch)
	}

	user, err := svc.Submit(ctx, "sess-1", p2.Code)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestResendKeepsAttemptCounter(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	svc := NewService(repo, &fakeSender{})
	ctx := context.Background()

	p, err := svc.Start(ctx, "sess-1", "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == p.Code {
		wrong = "000001"
	}
	for range 3 {
		_, err = svc.Submit(ctx, "sess-1", wrong)
		var mismatch *CodeMismatchError
		require.ErrorAs(t, err, &mismatch)
	}

	p.LastResendAt = time.Now().Add(-ResendCooldown - time.Second)
	_, err = svc.Resend(ctx, "sess-1")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "sess-1", wrong)
	var mismatch *CodeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Remaining, "resend does not reset the attempt counter")
}

func TestResendWithoutPending(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	svc := NewService(repo, &fakeSender{})

	_, err := svc.Resend(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestDispatchFailureKeepsPending(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	sender := &fakeSender{err: errors.New("relay down")}
	svc := NewService(repo, sender)
	ctx := context.Background()

	p, err := svc.Start(ctx, "sess-1", "ada@example.com", "correct horse", "Ada")
	require.ErrorIs(t, err, ErrDispatchFailed)
	require.NotNil(t, p)
	assert.True(t, strings.Contains(err.Error(), "relay down"))

	// The pending state survives so the user can still verify.
	got, ok := svc.Pending("sess-1")
	require.True(t, ok)
	assert.Equal(t, p.Code, got.Code)

	sender.err = nil
	user, err := svc.Submit(ctx, "sess-1", p.Code)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	_, repo := testutil.NewTestDB(t)
	svc := NewService(repo, &fakeSender{})
	ctx := context.Background()

	p, err := svc.Start(ctx, "sess-1", "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	svc.Discard("sess-1")

	_, err = svc.Submit(ctx, "sess-1", p.Code)
	assert.ErrorIs(t, err, ErrNoPending)
}
