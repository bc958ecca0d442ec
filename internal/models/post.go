// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package models

import "time"

// Post is a published article. Titles are unique across all posts.
type Post struct { //nolint:govet // fieldalignment not critical for models
	ID          int64     `db:"id" json:"id"`
	AuthorID    int64     `db:"author_id" json:"author_id"`
	Title       string    `db:"title" json:"title"`
	Subtitle    string    `db:"subtitle" json:"subtitle"`
	Body        string    `db:"body" json:"body"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// AuthorName is populated by joined queries, never written.
	AuthorName string `db:"author_name" json:"author_name,omitempty"`
}
