// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package ctxkeys holds typed context keys shared between middleware,
// handlers and templates.
package ctxkeys

type (
	// User is the context key for the authenticated user.
	User struct{}
	// Session is the context key for the decoded cookie session.
	Session struct{}
	// CSRFToken is the context key for the CSRF token.
	CSRFToken struct{}
)
