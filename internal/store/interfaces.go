package store

import (
	"context"

	"github.com/MKhiriev/identra-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ProfileRepository persists the escrowed vault backup of each user.
type ProfileRepository interface {
	// SaveVaultBackup creates or replaces the user's backup.
	SaveVaultBackup(ctx context.Context, userID string, backup models.VaultBackup) error
	// GetVaultBackup returns the user's backup or [ErrVaultBackupNotFound].
	GetVaultBackup(ctx context.Context, userID string) (models.VaultBackup, error)
	// DeleteVaultBackup removes the user's backup. A missing backup is not
	// an error.
	DeleteVaultBackup(ctx context.Context, userID string) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
