// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package session

import (
	"context"

	"github.com/daskng/blog/internal/ctxkeys"
)

// WithSession stores the decoded session in the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxkeys.Session{}, sess)
}

// FromContext returns the request's session. The session middleware puts
// one on every request, so a missing session means a programming error;
// callers get an empty anonymous session rather than a nil panic.
func FromContext(ctx context.Context) *Session {
	if sess, ok := ctx.Value(ctxkeys.Session{}).(*Session); ok {
		return sess
	}
	return &Session{}
}
