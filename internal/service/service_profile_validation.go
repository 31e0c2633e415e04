package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/MKhiriev/identra-vault/models"
)

const (
	// minSealedBlobSize is nonce(12) + tag(16).
	minSealedBlobSize = 28

	// clockSkew is how far in the future vaultInitializedAt may be.
	clockSkew = time.Minute
)

// ProfileServiceWrapper defines middleware composition for ProfileService.
// Implementations wrap an existing ProfileService to add behavior such as
// logging or validating.
type ProfileServiceWrapper interface {
	Wrap(ProfileService) ProfileService // returns a decorated ProfileService applying additional behavior
}

type ProfileValidationService struct {
	inner ProfileService
	now   func() time.Time
}

func NewProfileValidationService() ProfileServiceWrapper {
	return &ProfileValidationService{now: time.Now}
}

func (v *ProfileValidationService) SaveVaultBackup(ctx context.Context, userID string, backup models.VaultBackup) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(backup.VaultBackup)
	if err != nil || len(raw) < minSealedBlobSize {
		return ErrValidationInvalidVaultBackup
	}

	if backup.VaultInitializedAt.IsZero() || backup.VaultInitializedAt.After(v.now().Add(clockSkew)) {
		return ErrValidationInvalidInitializedAt
	}

	return v.inner.SaveVaultBackup(ctx, userID, backup)
}

func (v *ProfileValidationService) GetVaultBackup(ctx context.Context, userID string) (models.VaultBackup, error) {
	if err := validateUserID(userID); err != nil {
		return models.VaultBackup{}, err
	}

	return v.inner.GetVaultBackup(ctx, userID)
}

func (v *ProfileValidationService) DeleteVaultBackup(ctx context.Context, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	return v.inner.DeleteVaultBackup(ctx, userID)
}

func (v *ProfileValidationService) Wrap(wrapped ProfileService) ProfileService {
	v.inner = wrapped
	return v
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrValidationNoUserID
	}
	return nil
}
