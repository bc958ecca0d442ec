// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package i18n_test

import (
	"context"
	"testing"

	"github.com/daskng/blog/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestT(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)

	assert.Equal(t, "Email verified successfully!", i18n.T(ctx, "flash_verified"))
}

func TestT_UnknownKeyFallsBackToID(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)

	assert.Equal(t, "no_such_key", i18n.T(ctx, "no_such_key"))
}

func TestTData(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)
	msg := i18n.TData(ctx, "flash_code_mismatch", map[string]any{"Remaining": 4})

	assert.Equal(t, "Invalid verification code. 4 attempts remaining.", msg)
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, language.English, i18n.MatchLanguage("en-US,en;q=0.9"))
	assert.Equal(t, language.English, i18n.MatchLanguage(""))
	assert.Equal(t, language.English, i18n.MatchLanguage("garbage;;;"))
}

func TestGetLocale_Default(t *testing.T) {
	assert.Equal(t, "en", i18n.GetLocale(context.Background()))
}
