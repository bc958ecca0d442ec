// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	authctx "github.com/daskng/blog/internal/auth"
	"github.com/daskng/blog/internal/i18n"
	"github.com/daskng/blog/internal/repository"
	"github.com/daskng/blog/internal/services/content"
)

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "no such post")
	}
	return id, nil
}

// ShowPost renders a single post with its comments.
func (h *Handlers) ShowPost(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := postID(c)
	if err != nil {
		return err
	}

	post, err := h.content.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such post")
		}
		return err
	}

	comments, err := h.content.ListComments(ctx, id)
	if err != nil {
		return err
	}

	user := authctx.GetUser(ctx)
	canEdit := user != nil && (user.IsAdmin || user.ID == post.AuthorID)

	return h.render(c, http.StatusOK, "post", post.Title, echo.Map{
		"Post":     post,
		"Comments": comments,
		"CanEdit":  canEdit,
	})
}

// NewPostPage renders the empty post form. Admin only, enforced by the
// route middleware; the service checks again on submit.
func (h *Handlers) NewPostPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "make-post", "New Post", echo.Map{
		"Heading": "New Post",
		"Form":    map[string]string{},
	})
}

// CreatePost publishes a new post.
func (h *Handlers) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	user := authctx.GetUser(ctx)

	title := c.FormValue("title")
	subtitle := c.FormValue("subtitle")
	body := c.FormValue("body")
	imageURL := c.FormValue("image_url")

	post, err := h.content.CreatePost(ctx, user, title, subtitle, body, imageURL)
	if err != nil {
		if errors.Is(err, content.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "only admins may publish posts")
		}
		if msg, handled := postFormError(ctx, err); handled {
			h.flash(c, msg)
			return h.render(c, http.StatusUnprocessableEntity, "make-post", "New Post", echo.Map{
				"Heading": "New Post",
				"Form":    postForm(title, subtitle, body, imageURL),
			})
		}
		return err
	}

	h.flash(c, i18n.T(ctx, "flash_post_created"))
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
}

// EditPostPage renders the post form pre-filled with the existing post.
func (h *Handlers) EditPostPage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := postID(c)
	if err != nil {
		return err
	}

	post, err := h.content.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such post")
		}
		return err
	}

	user := authctx.GetUser(ctx)
	if user == nil || (user.ID != post.AuthorID && !user.IsAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "you may not edit this post")
	}

	return h.render(c, http.StatusOK, "make-post", "Edit Post", echo.Map{
		"Heading": "Edit Post",
		"Form":    postForm(post.Title, post.Subtitle, post.Body, post.ImageURL),
	})
}

// UpdatePost applies an edit. Authorship stays with the original author.
func (h *Handlers) UpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	user := authctx.GetUser(ctx)

	id, err := postID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	subtitle := c.FormValue("subtitle")
	body := c.FormValue("body")
	imageURL := c.FormValue("image_url")

	post, err := h.content.UpdatePost(ctx, user, id, title, subtitle, body, imageURL)
	switch {
	case errors.Is(err, content.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "you may not edit this post")
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "no such post")
	case err != nil:
		if msg, handled := postFormError(ctx, err); handled {
			h.flash(c, msg)
			return h.render(c, http.StatusUnprocessableEntity, "make-post", "Edit Post", echo.Map{
				"Heading": "Edit Post",
				"Form":    postForm(title, subtitle, body, imageURL),
			})
		}
		return err
	}

	h.flash(c, i18n.T(ctx, "flash_post_updated"))
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
}

// DeletePost removes a post and its comments.
func (h *Handlers) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	user := authctx.GetUser(ctx)

	id, err := postID(c)
	if err != nil {
		return err
	}

	err = h.content.DeletePost(ctx, user, id)
	switch {
	case errors.Is(err, content.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "only admins may delete posts")
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "no such post")
	case err != nil:
		return err
	}

	h.flash(c, i18n.T(ctx, "flash_post_deleted"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// CreateComment attaches a comment to a post.
func (h *Handlers) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	user := authctx.GetUser(ctx)

	id, err := postID(c)
	if err != nil {
		return err
	}

	body := c.FormValue("body")

	_, err = h.content.CreateComment(ctx, user, id, body)
	switch {
	case errors.Is(err, content.ErrForbidden):
		h.flash(c, i18n.T(ctx, "flash_login_required"))
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "no such post")
	case errors.Is(err, content.ErrBodyRequired):
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
	case err != nil:
		return err
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func postForm(title, subtitle, body, imageURL string) map[string]string {
	return map[string]string{
		"Title":    strings.TrimSpace(title),
		"Subtitle": strings.TrimSpace(subtitle),
		"Body":     body,
		"ImageURL": strings.TrimSpace(imageURL),
	}
}

func postFormError(ctx context.Context, err error) (string, bool) {
	switch {
	case errors.Is(err, repository.ErrDuplicateTitle):
		return i18n.T(ctx, "flash_duplicate_title"), true
	case errors.Is(err, content.ErrTitleRequired), errors.Is(err, content.ErrBodyRequired):
		return i18n.T(ctx, "flash_missing_fields"), true
	}
	return "", false
}
