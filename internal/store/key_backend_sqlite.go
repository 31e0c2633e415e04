package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/identra-vault/internal/keystore"
	"github.com/MKhiriev/identra-vault/internal/logger"
)

// sqliteKeyBackend is a [keystore.Backend] keeping one user's wrapped vault
// key in the local "vault_keys" table. It is the fallback for machines
// without an OS keychain.
type sqliteKeyBackend struct {
	db      *DB
	account string
	logger  *logger.Logger
}

// NewSQLiteKeyBackend returns a backend for account over db.
func NewSQLiteKeyBackend(db *DB, account string, log *logger.Logger) keystore.Backend {
	return &sqliteKeyBackend{db: db, account: account, logger: log}
}

// Put implements [keystore.Backend].
func (b *sqliteKeyBackend) Put(ctx context.Context, item keystore.WrappedKey) error {
	query, args, err := buildUpsertVaultKeyQuery(b.account, item.Salt, item.Wrapped, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = b.db.withRetry(ctx, func() error {
		_, err := b.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		b.logger.Err(err).Str("func", "*sqliteKeyBackend.Put").Msg("error saving vault key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Get implements [keystore.Backend].
func (b *sqliteKeyBackend) Get(ctx context.Context) (keystore.WrappedKey, error) {
	query, args, err := buildSelectVaultKeyQuery(b.account)
	if err != nil {
		return keystore.WrappedKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item keystore.WrappedKey
	err = b.db.withRetry(ctx, func() error {
		return b.db.QueryRowContext(ctx, query, args...).Scan(&item.Salt, &item.Wrapped, &item.CreatedAt)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return keystore.WrappedKey{}, keystore.ErrKeyNotFound
	case err != nil:
		b.logger.Err(err).Str("func", "*sqliteKeyBackend.Get").Msg("error reading vault key")
		return keystore.WrappedKey{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// Delete implements [keystore.Backend].
func (b *sqliteKeyBackend) Delete(ctx context.Context) error {
	query, args, err := buildDeleteVaultKeyQuery(b.account)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = b.db.withRetry(ctx, func() error {
		_, err := b.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		b.logger.Err(err).Str("func", "*sqliteKeyBackend.Delete").Msg("error deleting vault key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Exists implements [keystore.Backend].
func (b *sqliteKeyBackend) Exists(ctx context.Context) (bool, error) {
	query, args, err := buildCountVaultKeyQuery(b.account)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	err = b.db.withRetry(ctx, func() error {
		return b.db.QueryRowContext(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n > 0, nil
}
