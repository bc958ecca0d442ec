// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package server

import (
	"github.com/labstack/echo/v4"

	"github.com/daskng/blog/internal/handlers"
	"github.com/daskng/blog/internal/services/session"
	"github.com/daskng/blog/internal/static"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers, sessions *session.Manager) {
	e.StaticFS("/static", static.FS)

	e.GET("/healthz", h.Health)

	e.GET("/", h.Home)
	e.GET("/about", h.About)
	e.GET("/contact", h.ContactPage)
	e.POST("/contact", h.ContactSubmit)

	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.GET("/verify", h.VerifyPage)
	e.POST("/verify", h.Verify)
	e.GET("/resend", h.Resend)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)

	e.GET("/post/:id", h.ShowPost)
	e.POST("/post/:id/comments", h.CreateComment, requireAuth(sessions))

	e.GET("/new-post", h.NewPostPage, requireAuth(sessions), requireAdmin())
	e.POST("/new-post", h.CreatePost, requireAuth(sessions), requireAdmin())
	e.GET("/edit-post/:id", h.EditPostPage, requireAuth(sessions))
	e.POST("/edit-post/:id", h.UpdatePost, requireAuth(sessions))
	e.POST("/delete-post/:id", h.DeletePost, requireAuth(sessions), requireAdmin())
}
