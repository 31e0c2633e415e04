package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository] over the "vault_backups" table.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by db.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// SaveVaultBackup implements [ProfileRepository] with a single upsert.
func (r *profileRepository) SaveVaultBackup(ctx context.Context, userID string, backup models.VaultBackup) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertVaultBackupQuery(userID, backup)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.SaveVaultBackup").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = r.db.withRetry(ctx, func() error {
		res, err = r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.SaveVaultBackup").Msg("error saving vault backup")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrVaultBackupNotSaved
	}

	return nil
}

// GetVaultBackup implements [ProfileRepository].
func (r *profileRepository) GetVaultBackup(ctx context.Context, userID string) (models.VaultBackup, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectVaultBackupQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.GetVaultBackup").Msg("error building query")
		return models.VaultBackup{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var backup models.VaultBackup
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&backup.VaultBackup, &backup.VaultInitializedAt)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultBackup{}, ErrVaultBackupNotFound
	case err != nil:
		log.Err(err).Str("func", "*profileRepository.GetVaultBackup").Msg("error reading vault backup")
		return models.VaultBackup{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	backup.VaultInitializedAt = backup.VaultInitializedAt.UTC()
	return backup, nil
}

// DeleteVaultBackup implements [ProfileRepository].
func (r *profileRepository) DeleteVaultBackup(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteVaultBackupQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.DeleteVaultBackup").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.DeleteVaultBackup").Msg("error deleting vault backup")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
