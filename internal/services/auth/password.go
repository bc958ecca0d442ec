// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ErrWeakPassword is returned when a password fails validation.
var ErrWeakPassword = errors.New("password does not meet requirements")

// HashPassword returns the bcrypt hash of a plaintext password. The
// plaintext is never stored anywhere.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the candidate matches the stored hash.
// bcrypt's comparison is constant time.
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// ValidatePassword checks a candidate password before it is accepted into a
// pending registration.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if isEntirelyNumeric(password) {
		return ErrWeakPassword
	}
	return nil
}

func isEntirelyNumeric(password string) bool {
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(password) > 0
}
