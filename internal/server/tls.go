// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/acme/autocert"

	"github.com/daskng/blog/internal/config"
)

type tlsMode string

const (
	tlsModeOff        tlsMode = "off"
	tlsModeACME       tlsMode = "acme"
	tlsModeSelfSigned tlsMode = "selfsigned"
	tlsModeManual     tlsMode = "manual"
)

type tlsResult struct {
	TLSConfig   *tls.Config
	HTTPHandler http.Handler // HTTP-01 challenge handler, ACME only
	Mode        tlsMode
}

// setupTLS resolves the configured TLS mode and prepares certificates.
// "auto" picks off for localhost, ACME when a domain plus email is
// configured and ports 80/443 are free, and self-signed otherwise.
func setupTLS(cfg *config.Config) (*tlsResult, error) {
	mode := resolveTLSMode(cfg)

	switch mode {
	case tlsModeOff:
		slog.Info("TLS disabled")
		return &tlsResult{Mode: tlsModeOff}, nil
	case tlsModeACME:
		return setupACME(cfg)
	case tlsModeSelfSigned:
		return setupSelfSigned(cfg)
	case tlsModeManual:
		return setupManual(cfg)
	default:
		return nil, fmt.Errorf("unknown TLS mode: %s", mode)
	}
}

func resolveTLSMode(cfg *config.Config) tlsMode {
	host := cfg.Server.Host

	switch strings.ToLower(cfg.TLS.Mode) {
	case "off":
		return tlsModeOff
	case "acme":
		return tlsModeACME
	case "selfsigned":
		return tlsModeSelfSigned
	case "manual":
		return tlsModeManual
	case "auto", "":
	default:
		slog.Warn("unknown TLS mode, using auto", "mode", cfg.TLS.Mode)
	}

	if config.IsLocalhost(host) {
		return tlsModeOff
	}
	if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
		return tlsModeManual
	}
	if canUseACME(cfg) {
		return tlsModeACME
	}
	return tlsModeSelfSigned
}

func canUseACME(cfg *config.Config) bool {
	host := cfg.Server.Host
	if config.IsLocalhost(host) || net.ParseIP(host) != nil {
		return false
	}
	if cfg.TLS.Email == "" {
		return false
	}
	// HTTP-01 needs port 80, the site itself port 443.
	return portAvailable(80) && portAvailable(443)
}

func portAvailable(port int) bool {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

func setupACME(cfg *config.Config) (*tlsResult, error) {
	if cfg.TLS.Email == "" {
		return nil, fmt.Errorf("ACME mode requires a registration email")
	}

	certDir := filepath.Join(cfg.TLS.CertDir, "acme")
	if err := os.MkdirAll(certDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create ACME cert directory: %w", err)
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Email:      cfg.TLS.Email,
		Cache:      autocert.DirCache(certDir),
		HostPolicy: autocert.HostWhitelist(cfg.Server.Host),
	}

	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	slog.Info("TLS mode: acme", "host", cfg.Server.Host, "email", cfg.TLS.Email)

	return &tlsResult{
		Mode:        tlsModeACME,
		TLSConfig:   tlsConfig,
		HTTPHandler: manager.HTTPHandler(nil),
	}, nil
}

func setupSelfSigned(cfg *config.Config) (*tlsResult, error) {
	certDir := filepath.Join(cfg.TLS.CertDir, "selfsigned")
	if err := os.MkdirAll(certDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cert directory: %w", err)
	}

	certFile := filepath.Join(certDir, "cert.pem")
	keyFile := filepath.Join(certDir, "key.pem")

	if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil && !expiringSoon(&cert) {
		slog.Info("TLS mode: selfsigned (existing certificate)")
		return &tlsResult{Mode: tlsModeSelfSigned, TLSConfig: newTLSConfig(&cert)}, nil
	}

	slog.Info("TLS mode: selfsigned (generating certificate)")
	cert, err := generateSelfSignedCert(cfg.Server.Host, certFile, keyFile)
	if err != nil {
		return nil, err
	}

	return &tlsResult{Mode: tlsModeSelfSigned, TLSConfig: newTLSConfig(cert)}, nil
}

func setupManual(cfg *config.Config) (*tlsResult, error) {
	if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
		return nil, fmt.Errorf("manual TLS mode requires both cert-file and key-file")
	}

	cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	slog.Info("TLS mode: manual", "cert", cfg.TLS.CertFile, "key", cfg.TLS.KeyFile)

	return &tlsResult{Mode: tlsModeManual, TLSConfig: newTLSConfig(&cert)}, nil
}

func generateSelfSignedCert(host, certFile, keyFile string) (*tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{"Self-Signed"},
			CommonName:   host,
		},
		NotBefore:             now,
		NotAfter:              now.Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	if ip := net.ParseIP(host); ip != nil {
		template.IPAddresses = []net.IP{ip}
	} else {
		template.DNSNames = []string{host}
	}
	template.DNSNames = append(template.DNSNames, "localhost")
	template.IPAddresses = append(template.IPAddresses, net.ParseIP("127.0.0.1"), net.ParseIP("::1"))

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(certFile, certPEM, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write cert file: %w", err)
	}

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	if err := os.WriteFile(keyFile, keyPEM, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load generated cert: %w", err)
	}
	return &cert, nil
}

// expiringSoon reports whether the certificate expires within 30 days.
func expiringSoon(cert *tls.Certificate) bool {
	if len(cert.Certificate) == 0 {
		return true
	}
	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return true
	}
	return time.Until(parsed.NotAfter) < 30*24*time.Hour
}

func newTLSConfig(cert *tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{*cert},
		MinVersion:   tls.VersionTLS12,
	}
}
