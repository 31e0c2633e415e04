package config

import (
	"fmt"
	"time"
)

// DefaultServerRequestTimeout bounds inbound requests when no timeout is set.
const DefaultServerRequestTimeout = 30 * time.Second

// ServerApp holds token verification and integrity settings.
type ServerApp struct {
	TokenSignKey string
	TokenIssuer  string
	HashKey      string
	Version      string
}

// ServerHTTP holds the listen address and request timeout.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ServerDB holds the postgres connection string.
type ServerDB struct {
	DSN string
}

// ServerConfig is the escrow server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App    ServerApp
	Server ServerHTTP
	DB     ServerDB
}

// GetServerConfig builds and validates the server view of the merged
// configuration.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, _, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		App: ServerApp{
			TokenSignKey: cfg.App.TokenSignKey,
			TokenIssuer:  cfg.App.TokenIssuer,
			HashKey:      cfg.App.HashKey,
			Version:      cfg.App.Version,
		},
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		DB: ServerDB{DSN: cfg.Storage.DB.DSN},
	}

	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = DefaultServerRequestTimeout
	}

	return serverCfg
}
