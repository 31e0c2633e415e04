package service

import (
	"fmt"

	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/store"
)

type Services struct {
	AuthService    AuthService
	ProfileService ProfileService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.ServerApp, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(cfg, logger),
		ProfileService: NewProfileValidationService().Wrap(NewProfileService(storages.ProfileRepository, logger)),
		AppInfoService: appInfoService,
	}, nil
}
