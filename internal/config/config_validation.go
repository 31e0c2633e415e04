// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks invariants shared by every runtime. Role-specific checks
// live on the client and server views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Vault.MaxUnlockAttempts < 0 || cfg.Vault.AutoLock < 0 || cfg.Vault.UnlockRetryInterval < 0 {
		return ErrInvalidVaultConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.App.UserID) == "" {
		return ErrInvalidAppConfigs
	}

	switch cfg.Vault.KeyStore {
	case KeyStoreKeyring:
	case KeyStoreSQLite:
		if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidVaultConfigs
	}

	if cfg.Adapter.HTTPAddress != "" && (cfg.App.Token == "" || cfg.App.HashKey == "") {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
