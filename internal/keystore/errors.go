package keystore

import "errors"

// Errors returned by a [KeyStore]. Every failure of the underlying
// authenticator or backend is reported as one of these, possibly wrapped.
var (
	// ErrAuthenticationCancelled is returned when the user dismisses the
	// unlock prompt or the context is cancelled while it is shown.
	ErrAuthenticationCancelled = errors.New("authentication cancelled")

	// ErrAuthenticationFailed is returned when the user could not be
	// verified, e.g. a wrong device passcode.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrBiometricUnavailable is returned when the device cannot
	// authenticate the user at all: no hardware or nothing enrolled.
	ErrBiometricUnavailable = errors.New("device authentication unavailable")

	// ErrKeyNotFound is returned by Retrieve when nothing is stored.
	ErrKeyNotFound = errors.New("no vault key stored")

	// ErrStorageFailure is returned when the backend fails to read or write.
	ErrStorageFailure = errors.New("key storage failure")
)
