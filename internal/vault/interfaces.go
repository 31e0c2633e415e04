package vault

import (
	"context"

	"github.com/MKhiriev/identra-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_mock.go -package=mock

// BackupSink receives the self-encrypted backup record produced on
// Initialize and drops it on Reset. The escrow adapter is the production
// implementation.
type BackupSink interface {
	SaveBackup(ctx context.Context, backup models.VaultBackup) error
	DeleteBackup(ctx context.Context) error
}
