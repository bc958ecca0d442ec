// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authctx "github.com/daskng/blog/internal/auth"
	"github.com/daskng/blog/internal/i18n"
	"github.com/daskng/blog/internal/services/auth"
	"github.com/daskng/blog/internal/services/session"
	"github.com/daskng/blog/internal/services/verification"
)

// RegisterPage renders the signup form.
func (h *Handlers) RegisterPage(c echo.Context) error {
	if authctx.IsAuthenticated(c.Request().Context()) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return h.render(c, http.StatusOK, "register", "Register", echo.Map{
		"Form": map[string]string{},
	})
}

// Register starts a pending registration and emails a verification code.
// Nothing is written to the users table yet.
func (h *Handlers) Register(c echo.Context) error {
	ctx := c.Request().Context()
	sess := session.FromContext(ctx)

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	form := map[string]string{"Name": name, "Email": email}

	if name == "" || email == "" || password == "" {
		h.flash(c, i18n.T(ctx, "flash_missing_fields"))
		return h.render(c, http.StatusUnprocessableEntity, "register", "Register", echo.Map{"Form": form})
	}

	if err := auth.ValidatePassword(password); err != nil {
		h.flash(c, i18n.T(ctx, "flash_weak_password"))
		return h.render(c, http.StatusUnprocessableEntity, "register", "Register", echo.Map{"Form": form})
	}

	_, err := h.verifier.Start(ctx, sess.ID, email, password, name)
	switch {
	case errors.Is(err, verification.ErrEmailTaken):
		h.flash(c, i18n.T(ctx, "flash_email_taken"))
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, verification.ErrDispatchFailed):
		// The pending state survives; the verify page offers a resend.
		h.flash(c, i18n.T(ctx, "flash_dispatch_failed"))
		return c.Redirect(http.StatusSeeOther, "/verify")
	case err != nil:
		return err
	}

	h.flash(c, i18n.TData(ctx, "flash_check_inbox", map[string]any{"Email": email}))
	return c.Redirect(http.StatusSeeOther, "/verify")
}

// VerifyPage renders the code entry form for the session's pending
// registration.
func (h *Handlers) VerifyPage(c echo.Context) error {
	ctx := c.Request().Context()
	sess := session.FromContext(ctx)

	pending, ok := h.verifier.Pending(sess.ID)
	if !ok {
		h.flash(c, i18n.T(ctx, "flash_no_pending"))
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	return h.render(c, http.StatusOK, "verify", "Verify", echo.Map{
		"Email": pending.Email,
	})
}

// Verify checks the submitted code. Success promotes the registration to
// a real account and logs the new user in.
func (h *Handlers) Verify(c echo.Context) error {
	ctx := c.Request().Context()
	sess := session.FromContext(ctx)

	code := strings.TrimSpace(c.FormValue("code"))

	user, err := h.verifier.Submit(ctx, sess.ID, code)
	var mismatch *verification.CodeMismatchError
	switch {
	case errors.Is(err, verification.ErrNoPending):
		h.flash(c, i18n.T(ctx, "flash_no_pending"))
		return c.Redirect(http.StatusSeeOther, "/register")
	case errors.Is(err, verification.ErrExpired):
		h.flash(c, i18n.T(ctx, "flash_code_expired"))
		return c.Redirect(http.StatusSeeOther, "/register")
	case errors.Is(err, verification.ErrTooManyAttempts):
		h.flash(c, i18n.T(ctx, "flash_too_many_attempts"))
		return c.Redirect(http.StatusSeeOther, "/register")
	case errors.As(err, &mismatch):
		h.flash(c, i18n.TData(ctx, "flash_code_mismatch", map[string]any{"Remaining": mismatch.Remaining}))
		return c.Redirect(http.StatusSeeOther, "/verify")
	case errors.Is(err, verification.ErrEmailTaken):
		h.flash(c, i18n.T(ctx, "flash_email_taken"))
		return c.Redirect(http.StatusSeeOther, "/login")
	case err != nil:
		return err
	}

	// Fresh session identity on privilege change.
	h.sessions.Renew(sess)
	sess.UserID = user.ID
	h.flash(c, i18n.T(ctx, "flash_verified"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Resend rotates the verification code and sends it again, subject to the
// cooldown.
func (h *Handlers) Resend(c echo.Context) error {
	ctx := c.Request().Context()
	sess := session.FromContext(ctx)

	_, err := h.verifier.Resend(ctx, sess.ID)
	switch {
	case errors.Is(err, verification.ErrNoPending):
		h.flash(c, i18n.T(ctx, "flash_no_pending"))
		return c.Redirect(http.StatusSeeOther, "/register")
	case errors.Is(err, verification.ErrResendCooldown):
		h.flash(c, i18n.T(ctx, "flash_resend_cooldown"))
		return c.Redirect(http.StatusSeeOther, "/verify")
	case errors.Is(err, verification.ErrDispatchFailed):
		h.flash(c, i18n.T(ctx, "flash_dispatch_failed"))
		return c.Redirect(http.StatusSeeOther, "/verify")
	case err != nil:
		return err
	}

	h.flash(c, i18n.T(ctx, "flash_resent"))
	return c.Redirect(http.StatusSeeOther, "/verify")
}

// LoginPage renders the login form.
func (h *Handlers) LoginPage(c echo.Context) error {
	if authctx.IsAuthenticated(c.Request().Context()) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return h.render(c, http.StatusOK, "login", "Log In", echo.Map{
		"Form": map[string]string{},
	})
}

// Login authenticates the user. The two failure flashes are deliberately
// distinct, matching the messages the site has always shown.
func (h *Handlers) Login(c echo.Context) error {
	ctx := c.Request().Context()
	sess := session.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	user, err := h.auth.Login(ctx, email, password)
	switch {
	case errors.Is(err, auth.ErrUnknownEmail):
		h.flash(c, i18n.T(ctx, "flash_login_no_user"))
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, auth.ErrInvalidPassword):
		h.flash(c, i18n.T(ctx, "flash_login_bad_password"))
		return c.Redirect(http.StatusSeeOther, "/login")
	case err != nil:
		return err
	}

	h.sessions.Renew(sess)
	sess.UserID = user.ID
	if err := h.sessions.Save(c, sess); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the login and rotates the session identity. Any pending
// registration tied to the old identity is dropped with it.
func (h *Handlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	sess := session.FromContext(ctx)

	h.verifier.Discard(sess.ID)
	sess.UserID = 0
	h.sessions.Renew(sess)
	h.flash(c, i18n.T(ctx, "flash_logged_out"))
	return c.Redirect(http.StatusSeeOther, "/")
}
