package keystore

import (
	"context"
	"fmt"
)

// Availability is the state of device authentication.
type Availability int

const (
	// AvailabilityReady means the user can be authenticated.
	AvailabilityReady Availability = iota
	// AvailabilityNoHardware means the device has no usable authenticator.
	AvailabilityNoHardware
	// AvailabilityNotEnrolled means the authenticator exists but the user
	// has not set it up.
	AvailabilityNotEnrolled
)

func (a Availability) String() string {
	switch a {
	case AvailabilityReady:
		return "ready"
	case AvailabilityNoHardware:
		return "no hardware"
	case AvailabilityNotEnrolled:
		return "not enrolled"
	default:
		return fmt.Sprintf("Availability(%d)", int(a))
	}
}

// RequireAvailable blocks vault entry when auth cannot authenticate the
// user. There is no bypass; development builds use DevAuthenticator.
func RequireAvailable(ctx context.Context, auth Authenticator) error {
	if auth == nil {
		return ErrBiometricUnavailable
	}
	if a := auth.Availability(ctx); a != AvailabilityReady {
		return fmt.Errorf("%w: %s", ErrBiometricUnavailable, a)
	}
	return nil
}
