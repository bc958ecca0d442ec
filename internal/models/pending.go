// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package models

import "time"

// PendingRegistration holds unconfirmed signup data while the owner proves
// control of the email address. It is never persisted and belongs to
// exactly one session; the password stays plaintext until the code is
// confirmed and the record is promoted into a User.
type PendingRegistration struct { //nolint:govet // fieldalignment not critical
	Email        string
	Password     string
	Name         string
	Code         string
	CreatedAt    time.Time
	Attempts     int
	LastResendAt time.Time
}
