// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplate_RendersCode(t *testing.T) {
	subject, body, err := defaultTemplate.render("a@x.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, "Email Verification Code", subject)
	assert.Contains(t, body, "Verification code: 123456")
	assert.Contains(t, body, "a@x.com")
}

func TestPickTemplate_FallsBackToDefault(t *testing.T) {
	tpl := pickTemplate(nil)

	assert.Equal(t, defaultTemplate.Subject, tpl.Subject)
}

func TestPickTemplate_UsesConfiguredSet(t *testing.T) {
	set := []Template{
		{Subject: "One", Body: "{{.Code}}"},
		{Subject: "Two", Body: "{{.Code}}"},
	}

	seen := map[string]bool{}
	for range 100 {
		seen[pickTemplate(set).Subject] = true
	}

	assert.True(t, seen["One"] || seen["Two"])
	assert.False(t, seen[defaultTemplate.Subject])
}
