// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskng/blog/internal/models"
)

func TestNewParsesAllViews(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{"index", "post", "make-post", "register", "verify", "login", "contact", "about", "error"} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "base")
}

func TestRenderIndex(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	var buf strings.Builder
	err = r.Render(&buf, "index", echo.Map{
		"Year": 2025,
		"Posts": []models.Post{
			{ID: 1, Title: "First Light", Subtitle: "A beginning", AuthorName: "Ada", PublishedAt: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		},
	}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "First Light")
	assert.Contains(t, out, "Posted by Ada on March 14, 2025")
	assert.Contains(t, out, `href="/post/1"`)
}

func TestRenderEscapesHTML(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	var buf strings.Builder
	err = r.Render(&buf, "index", echo.Map{
		"Year": 2025,
		"Posts": []models.Post{
			{ID: 1, Title: "<script>alert(1)</script>", AuthorName: "Mallory", PublishedAt: time.Now()},
		},
	}, nil)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)

	var buf strings.Builder
	err = r.Render(&buf, "nope", nil, nil)
	assert.ErrorContains(t, err, "unknown template")
}

func TestGravatarFunc(t *testing.T) {
	t.Parallel()

	fn, ok := funcs["gravatar"].(func(string, int) string)
	require.True(t, ok)

	// Hash of the normalized address, per the gravatar contract.
	got := fn("  Ada@Example.COM ", 100)
	assert.Equal(t, "https://www.gravatar.com/avatar/3e3417d7ef77d5932a6734b916515ed5?s=100&d=retro", got)
}
