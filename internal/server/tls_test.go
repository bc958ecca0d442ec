// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daskng/blog/internal/config"
)

func TestResolveTLSMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want tlsMode
	}{
		{
			name: "explicit off",
			cfg:  config.Config{TLS: config.TLSConfig{Mode: "off"}},
			want: tlsModeOff,
		},
		{
			name: "explicit manual",
			cfg:  config.Config{TLS: config.TLSConfig{Mode: "manual"}},
			want: tlsModeManual,
		},
		{
			name: "auto on localhost",
			cfg: config.Config{
				Server: config.ServerConfig{Host: "localhost"},
				TLS:    config.TLSConfig{Mode: "auto"},
			},
			want: tlsModeOff,
		},
		{
			name: "auto with cert files",
			cfg: config.Config{
				Server: config.ServerConfig{Host: "blog.example.com"},
				TLS:    config.TLSConfig{Mode: "auto", CertFile: "cert.pem", KeyFile: "key.pem"},
			},
			want: tlsModeManual,
		},
		{
			name: "unknown mode falls back to auto",
			cfg: config.Config{
				Server: config.ServerConfig{Host: "app.localhost"},
				TLS:    config.TLSConfig{Mode: "bogus"},
			},
			want: tlsModeOff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resolveTLSMode(&tt.cfg))
		})
	}
}
