// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// vault CLI and the backup escrow server. It is populated by merging values
// from environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds identity, token and integrity settings.
	App App `envPrefix:"APP_"`

	// Vault holds the local vault settings: key store backend, auto-lock
	// and unlock throttling.
	Vault Vault `envPrefix:"VAULT_"`

	// Storage holds the database settings. The client uses it for the
	// sqlite key store, the server for its postgres escrow table.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the escrow server listen address and timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client-side address of the escrow server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Log holds logging destinations.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// UserID identifies the signed-in account the vault session belongs to.
	// Env: APP_USER_ID
	UserID string `env:"USER_ID"`

	// DevMode allows the development authenticator when no device
	// authentication is available. Never enable it in production.
	// Env: APP_DEV_MODE
	DevMode bool `env:"DEV_MODE"`

	// Token is the bearer token the client presents to the escrow server.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// TokenSignKey is the secret the server uses to verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of every accepted JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// HashKey is the HMAC key for request body integrity (HashSHA256 header).
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed in build info output.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Vault holds settings of the local encryption vault.
type Vault struct {
	// KeyStore selects the secure key store backend: "keyring" or "sqlite".
	// Env: VAULT_KEYSTORE
	KeyStore string `env:"KEYSTORE"`

	// Service is the keychain service name entries are stored under.
	// Env: VAULT_SERVICE
	Service string `env:"SERVICE"`

	// DerivationSalt is the PBKDF2 salt applied to the recovery seed.
	// Changing it changes every derived master key.
	// Env: VAULT_DERIVATION_SALT
	DerivationSalt string `env:"DERIVATION_SALT"`

	// AutoLock is the inactivity period after which the vault locks itself.
	// Env: VAULT_AUTO_LOCK
	AutoLock time.Duration `env:"AUTO_LOCK"`

	// MaxUnlockAttempts is the burst of unlock attempts allowed before
	// throttling kicks in.
	// Env: VAULT_MAX_UNLOCK_ATTEMPTS
	MaxUnlockAttempts int `env:"MAX_UNLOCK_ATTEMPTS"`

	// UnlockRetryInterval is how often one more unlock attempt is granted
	// once the burst is spent.
	// Env: VAULT_UNLOCK_RETRY_INTERVAL
	UnlockRetryInterval time.Duration `env:"UNLOCK_RETRY_INTERVAL"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN is the sqlite file path on the client or the PostgreSQL
	// connection string on the server.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the escrow server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds client settings for reaching the escrow server.
type Adapter struct {
	// HTTPAddress is the escrow server base address. Empty disables the
	// remote backup.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Log holds logging destinations.
type Log struct {
	// Dir is the directory the CLI writes vault.log into.
	// Env: LOG_DIR
	Dir string `env:"DIR"`
}

// GetStructuredConfig loads and merges the configuration from all sources
// in the following priority order (later sources override non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//
// It also returns the positional arguments left after flag parsing.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON()

	cfg, err := b.build()
	return cfg, b.rest, err
}
