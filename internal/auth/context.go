// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"github.com/daskng/blog/internal/ctxkeys"
	"github.com/daskng/blog/internal/models"
)

// SetUser stores the authenticated user in the context.
func SetUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxkeys.User{}, user)
}

// GetUser returns the authenticated user from the context, or nil if not
// authenticated.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(ctxkeys.User{}).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}

// IsAdmin returns true if the context has an authenticated admin user.
func IsAdmin(ctx context.Context) bool {
	user := GetUser(ctx)
	return user != nil && user.IsAdmin
}
