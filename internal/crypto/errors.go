package crypto

import "errors"

var (
	// ErrInvalidMnemonic is returned by key derivation when the phrase does
	// not pass validation. No derivation work is done in that case.
	ErrInvalidMnemonic = errors.New("invalid recovery phrase")

	// ErrInvalidKey is returned when a key is not exactly 32 bytes.
	ErrInvalidKey = errors.New("key must be 32 bytes")

	// ErrIntegrity is returned when a sealed blob fails GCM authentication:
	// wrong key, truncated or tampered data. It is never returned for the
	// legacy short-value passthrough.
	ErrIntegrity = errors.New("sealed data failed integrity check")
)
