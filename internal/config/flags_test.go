package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only host no port", addr: NetAddress{Host: "localhost"}, expected: "localhost:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ipv4", input: "0.0.0.0:9000", want: NetAddress{Host: "0.0.0.0", Port: 9000}},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non numeric port", input: "localhost:http", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "hostname is rejected", input: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	args := []string{
		"-a", "127.0.0.1:8081",
		"-d", "vault.db",
		"-config", "cfg.json",
		"-user", "uid-7",
		"-dev",
		"-token", "tok",
		"-token-sign-key", "sign",
		"-token-issuer", "iss",
		"-hash-key", "hk",
		"-keystore", "sqlite",
		"-auto-lock", "90s",
		"-escrow", "http://localhost:8081",
		"-request-timeout", "3s",
		"-log-dir", "/tmp/logs",
		"seal-text", "hello",
	}

	cfg, rest, err := ParseFlags(args)
	require.NoError(t, err)

	assert.Equal(t, []string{"seal-text", "hello"}, rest)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "vault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "uid-7", cfg.App.UserID)
	assert.True(t, cfg.App.DevMode)
	assert.Equal(t, "tok", cfg.App.Token)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "iss", cfg.App.TokenIssuer)
	assert.Equal(t, "hk", cfg.App.HashKey)
	assert.Equal(t, "sqlite", cfg.Vault.KeyStore)
	assert.Equal(t, 90*time.Second, cfg.Vault.AutoLock)
	assert.Equal(t, "http://localhost:8081", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/logs", cfg.Log.Dir)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, rest, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, _, err := ParseFlags([]string{"-nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing flags")
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, _, err := ParseFlags([]string{"-a", "nowhere"})
	require.Error(t, err)
}
