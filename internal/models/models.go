// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package models defines the database rows and transient value objects
// shared across the application.
package models
