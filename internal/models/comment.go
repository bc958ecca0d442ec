// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package models

import "time"

// Comment belongs to exactly one post and one author. Comments are removed
// together with their post (ON DELETE CASCADE).
type Comment struct { //nolint:govet // fieldalignment not critical for models
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Populated by joined queries, never written.
	AuthorName  string `db:"author_name" json:"author_name,omitempty"`
	AuthorEmail string `db:"author_email" json:"-"`
}
