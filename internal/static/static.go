// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package static embeds the site's static assets so the binary ships
// self-contained.
package static

import "embed"

//go:embed css
var FS embed.FS
