package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/keystore"
	"github.com/MKhiriev/identra-vault/internal/logger"
)

// ClientStorages is the client-side sqlite database holding wrapped vault
// keys for the users of this machine.
type ClientStorages struct {
	db     *DB
	logger *logger.Logger
}

// NewClientStorages opens (creating if needed) the sqlite file at
// cfg.DB.DSN with mode 0600 and runs pending migrations.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{db: db, logger: logger}, nil
}

// KeyBackend returns the wrapped key slot of account.
func (s *ClientStorages) KeyBackend(account string) keystore.Backend {
	return NewSQLiteKeyBackend(s.db, account, s.logger)
}

func (s *ClientStorages) Close() error {
	return s.db.Close()
}

// Storages groups the escrow server repositories.
type Storages struct {
	ProfileRepository ProfileRepository

	db *DB
}

// NewStorages connects to postgres, runs pending migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.ServerDB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		ProfileRepository: NewProfileRepository(db, logger),
		db:                db,
	}, nil
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	return s.db.Close()
}
