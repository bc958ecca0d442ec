// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders HTML error pages. Internal errors are logged in
// full but never shown to the visitor.
func (h *Handlers) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong."

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request_failed", "error", err, "method", c.Request().Method, "path", c.Request().URL.Path)
		message = "Something went wrong."
	}

	if renderErr := h.render(c, code, "error", strconv.Itoa(code), echo.Map{
		"Status":  code,
		"Message": message,
	}); renderErr != nil {
		_ = c.String(code, message)
	}
}
