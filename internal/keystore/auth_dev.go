package keystore

import (
	"context"
	"fmt"

	"github.com/MKhiriev/identra-vault/internal/logger"
)

const devSecret = "identra-dev-device-secret"

// DevAuthenticator stands in for device authentication on simulators and
// CI machines. It accepts every request with a fixed secret, so it only
// works when development mode was switched on explicitly.
type DevAuthenticator struct {
	enabled bool
	logger  *logger.Logger
}

// NewDevAuthenticator returns a DevAuthenticator. enabled comes from
// APP_DEV_MODE; when false the authenticator reports itself unavailable.
func NewDevAuthenticator(enabled bool, log *logger.Logger) *DevAuthenticator {
	return &DevAuthenticator{enabled: enabled, logger: log}
}

// Availability implements [Authenticator].
func (a *DevAuthenticator) Availability(_ context.Context) Availability {
	if !a.enabled {
		return AvailabilityNoHardware
	}
	return AvailabilityReady
}

// Authenticate implements [Authenticator].
func (a *DevAuthenticator) Authenticate(ctx context.Context, prompt Prompt) ([]byte, error) {
	if !a.enabled {
		return nil, ErrBiometricUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationCancelled, err)
	}

	a.logger.Warn().
		Str("func", "*DevAuthenticator.Authenticate").
		Str("reason", prompt.Reason).
		Msg("development authenticator in use: the vault key is NOT protected by device authentication")

	return []byte(devSecret), nil
}
