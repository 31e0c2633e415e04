package service

import (
	"context"
	"time"

	"github.com/MKhiriev/identra-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ProfileService manages the escrowed vault backup kept in each user's
// profile. The server never sees the master key: the backup is sealed under
// the key itself and stored as an opaque string.
type ProfileService interface {
	SaveVaultBackup(ctx context.Context, userID string, backup models.VaultBackup) error
	GetVaultBackup(ctx context.Context, userID string) (models.VaultBackup, error)
	DeleteVaultBackup(ctx context.Context, userID string) error
}

type AuthService interface {
	CreateToken(ctx context.Context, userID string, ttl time.Duration) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
