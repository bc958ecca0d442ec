// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	authctx "github.com/daskng/blog/internal/auth"
	"github.com/daskng/blog/internal/services/session"
)

// render fills in the keys every page expects (User, Flashes, CSRFToken,
// Year) and hands off to the template renderer. Popping flashes mutates
// the session, so the cookie is rewritten when any were queued.
func (h *Handlers) render(c echo.Context, status int, name, title string, data echo.Map) error {
	ctx := c.Request().Context()
	sess := session.FromContext(ctx)

	if data == nil {
		data = echo.Map{}
	}
	data["User"] = authctx.GetUser(ctx)
	data["Year"] = time.Now().Year()
	if title != "" {
		data["Title"] = title
	}
	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"], _ = c.Get("csrf").(string)
	}

	flashes := sess.PopFlashes()
	data["Flashes"] = flashes
	if len(flashes) > 0 {
		if err := h.sessions.Save(c, sess); err != nil {
			slog.Error("session_save_failed", "error", err)
		}
	}

	return c.Render(status, name, data)
}

// flash queues a message for the next rendered page and persists the
// session cookie.
func (h *Handlers) flash(c echo.Context, msg string) {
	sess := session.FromContext(c.Request().Context())
	sess.AddFlash(msg)
	if err := h.sessions.Save(c, sess); err != nil {
		slog.Error("session_save_failed", "error", err)
	}
}
