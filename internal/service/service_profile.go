package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/store"
	"github.com/MKhiriev/identra-vault/models"
)

type profileService struct {
	profileRepository store.ProfileRepository

	logger *logger.Logger
}

func NewProfileService(profileRepository store.ProfileRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		logger:            logger,
	}
}

func (p *profileService) SaveVaultBackup(ctx context.Context, userID string, backup models.VaultBackup) error {
	backup.VaultInitializedAt = backup.VaultInitializedAt.UTC()

	if err := p.profileRepository.SaveVaultBackup(ctx, userID, backup); err != nil {
		return fmt.Errorf("error saving vault backup: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Msg("vault backup saved")
	return nil
}

func (p *profileService) GetVaultBackup(ctx context.Context, userID string) (models.VaultBackup, error) {
	backup, err := p.profileRepository.GetVaultBackup(ctx, userID)
	if err != nil {
		return models.VaultBackup{}, fmt.Errorf("error getting vault backup: %w", err)
	}

	return backup, nil
}

func (p *profileService) DeleteVaultBackup(ctx context.Context, userID string) error {
	if err := p.profileRepository.DeleteVaultBackup(ctx, userID); err != nil {
		return fmt.Errorf("error deleting vault backup: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Msg("vault backup deleted")
	return nil
}
