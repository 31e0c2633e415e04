package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates an escrow address without the
	// token or hash key needed to talk to it.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an empty or in-memory DSN where a
	// durable database is required.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing identity or signing settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidVaultConfigs indicates an unknown key store backend or
	// negative vault timings.
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
