// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host     string
		expected bool
	}{
		{"", true},
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"blog.localhost", true},
		{"sub.domain.localhost", true},
		{"example.com", false},
		{"www.dask.com.ng", false},
		{"192.168.1.1", false},
		{"localhost.com", false}, // not a real localhost
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLocalhost(tt.host))
		})
	}
}

func TestShouldUseTLS(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		host     string
		expected bool
	}{
		{"off mode", "off", "example.com", false},
		{"acme mode", "acme", "localhost", true},
		{"selfsigned mode", "selfsigned", "localhost", true},
		{"manual mode", "manual", "localhost", true},
		{"auto mode with localhost", "auto", "localhost", false},
		{"auto mode with remote host", "auto", "example.com", true},
		{"empty mode with localhost", "", "localhost", false},
		{"empty mode with remote host", "", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldUseTLS(tt.mode, tt.host))
		})
	}
}

func TestNewFromCLI_Defaults(t *testing.T) {
	var cfg *Config

	cmd := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg = NewFromCLI(cmd)
			return nil
		},
	}

	err := cmd.Run(context.Background(), []string{"test"})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, "./data/blog.db", cfg.Database.DSN)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, 587, cfg.Contact.Port)
	assert.Equal(t, "_session", cfg.Session.CookieName)
	assert.Equal(t, 604800, cfg.Session.MaxAge)
}

func TestBuildBaseURL_HidesDefaultPorts(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "example.com", Port: 443},
		TLS:    TLSConfig{Mode: "manual"},
	}
	assert.Equal(t, "https://example.com", buildBaseURL(cfg))

	cfg = &Config{
		Server: ServerConfig{Host: "localhost", Port: 80},
		TLS:    TLSConfig{Mode: "off"},
	}
	assert.Equal(t, "http://localhost", buildBaseURL(cfg))
}
