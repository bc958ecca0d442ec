// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// GenerateCode returns a numeric one-time code. Each digit is drawn
// independently and uniformly from crypto/rand; repeats and leading zeros
// are allowed.
func GenerateCode() (string, error) {
	digits := make([]byte, CodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate code digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
