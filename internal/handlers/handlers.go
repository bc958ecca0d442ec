// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers. They translate form input
// into service calls and service results into rendered pages, flashes and
// redirects; the rules themselves live in the services.
package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/daskng/blog/internal/i18n"
	"github.com/daskng/blog/internal/services/auth"
	"github.com/daskng/blog/internal/services/content"
	"github.com/daskng/blog/internal/services/session"
	"github.com/daskng/blog/internal/services/verification"
)

// ContactMailer relays contact-form messages to the configured inbox.
type ContactMailer interface {
	SendContactMessage(name, replyTo, message string) error
}

// Handlers bundles the services the routes need.
type Handlers struct {
	content  *content.Service
	auth     *auth.Service
	verifier *verification.Service
	mailer   ContactMailer
	sessions *session.Manager
}

// New creates the handler set.
func New(
	contentSvc *content.Service,
	authSvc *auth.Service,
	verifier *verification.Service,
	mailer ContactMailer,
	sessions *session.Manager,
) *Handlers {
	return &Handlers{
		content:  contentSvc,
		auth:     authSvc,
		verifier: verifier,
		mailer:   mailer,
		sessions: sessions,
	}
}

// Health reports liveness for load balancers and uptime checks.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Home renders the post index, newest first.
func (h *Handlers) Home(c echo.Context) error {
	posts, err := h.content.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "index", "", echo.Map{
		"Posts": posts,
	})
}

// About renders the about page.
func (h *Handlers) About(c echo.Context) error {
	return h.render(c, http.StatusOK, "about", "About", nil)
}

// ContactPage renders the contact form.
func (h *Handlers) ContactPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "contact", "Contact", echo.Map{
		"Form": map[string]string{},
	})
}

// ContactSubmit relays a contact-form message to the configured inbox.
// A relay failure never becomes a 500; the visitor is told to try again.
func (h *Handlers) ContactSubmit(c echo.Context) error {
	ctx := c.Request().Context()

	name := strings.TrimSpace(c.FormValue("name"))
	replyTo := strings.TrimSpace(c.FormValue("email"))
	message := strings.TrimSpace(c.FormValue("message"))

	form := map[string]string{"Name": name, "Email": replyTo, "Message": message}

	if name == "" || replyTo == "" || message == "" {
		h.flash(c, i18n.T(ctx, "flash_missing_fields"))
		return h.render(c, http.StatusUnprocessableEntity, "contact", "Contact", echo.Map{"Form": form})
	}

	if err := h.mailer.SendContactMessage(name, replyTo, message); err != nil {
		h.flash(c, i18n.T(ctx, "flash_contact_failed"))
		return h.render(c, http.StatusOK, "contact", "Contact", echo.Map{"Form": form})
	}

	h.flash(c, i18n.T(ctx, "flash_contact_sent"))
	return c.Redirect(http.StatusSeeOther, "/contact")
}
