package mnemonic

import "errors"

var (
	// ErrEntropyUnavailable is returned when the OS CSPRNG cannot supply
	// entropy. Callers must treat it as fatal and never fall back to a
	// weaker source.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	// ErrInvalidEntropy is returned when entropy is not exactly 16 bytes.
	ErrInvalidEntropy = errors.New("entropy must be 128 bits")

	// ErrInvalidChallenge is returned when a confirmation challenge asks for
	// zero words or more words than the phrase has.
	ErrInvalidChallenge = errors.New("invalid confirmation challenge size")
)
