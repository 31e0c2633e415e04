package config

import (
	"fmt"
	"time"
)

// Defaults applied to the client view when a source leaves a field empty.
const (
	DefaultKeyStore            = KeyStoreKeyring
	DefaultService             = "com.adhham.identra.vault"
	DefaultDerivationSalt      = "identra-fixed-salt"
	DefaultAutoLock            = 5 * time.Minute
	DefaultMaxUnlockAttempts   = 5
	DefaultUnlockRetryInterval = 30 * time.Second
	DefaultAdapterTimeout      = 15 * time.Second
)

// Supported key store backends.
const (
	KeyStoreKeyring = "keyring"
	KeyStoreSQLite  = "sqlite"
)

// ClientApp holds client-side identity and integrity settings.
type ClientApp struct {
	// UserID is the signed-in account the vault session is scoped to.
	UserID string
	// DevMode enables the development authenticator.
	DevMode bool
	// Token is the bearer token for the escrow server.
	Token string
	// HashKey is the HMAC key used to sign request bodies.
	HashKey string
}

// ClientVault holds the local vault settings.
type ClientVault struct {
	KeyStore            string
	Service             string
	DerivationSalt      string
	AutoLock            time.Duration
	MaxUnlockAttempts   int
	UnlockRetryInterval time.Duration
}

// ClientAdapter holds network settings used by the escrow adapter.
type ClientAdapter struct {
	// HTTPAddress is the escrow server address. Empty disables backups.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the sqlite file path of the local key store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientLog holds the client logging destination.
type ClientLog struct {
	Dir string
}

// ClientConfig is the vault CLI configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Vault   ClientVault
	Adapter ClientAdapter
	Storage ClientStorage
	Log     ClientLog
}

// GetClientConfig builds and validates the client view of the merged
// configuration. It returns the positional arguments (the subcommand and
// its operands) left after flag parsing.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, rest, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			UserID:  cfg.App.UserID,
			DevMode: cfg.App.DevMode,
			Token:   cfg.App.Token,
			HashKey: cfg.App.HashKey,
		},
		Vault: ClientVault{
			KeyStore:            cfg.Vault.KeyStore,
			Service:             cfg.Vault.Service,
			DerivationSalt:      cfg.Vault.DerivationSalt,
			AutoLock:            cfg.Vault.AutoLock,
			MaxUnlockAttempts:   cfg.Vault.MaxUnlockAttempts,
			UnlockRetryInterval: cfg.Vault.UnlockRetryInterval,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Log: ClientLog{Dir: cfg.Log.Dir},
	}

	clientCfg.applyDefaults()
	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Vault.KeyStore == "" {
		cfg.Vault.KeyStore = DefaultKeyStore
	}
	if cfg.Vault.Service == "" {
		cfg.Vault.Service = DefaultService
	}
	if cfg.Vault.DerivationSalt == "" {
		cfg.Vault.DerivationSalt = DefaultDerivationSalt
	}
	if cfg.Vault.AutoLock == 0 {
		cfg.Vault.AutoLock = DefaultAutoLock
	}
	if cfg.Vault.MaxUnlockAttempts == 0 {
		cfg.Vault.MaxUnlockAttempts = DefaultMaxUnlockAttempts
	}
	if cfg.Vault.UnlockRetryInterval == 0 {
		cfg.Vault.UnlockRetryInterval = DefaultUnlockRetryInterval
	}
	if cfg.Adapter.HTTPAddress != "" && cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultAdapterTimeout
	}
}
