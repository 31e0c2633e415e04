package keystore

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/keystore_mock.go -package=mock

// KeyStore persists the vault master key behind device authentication.
type KeyStore interface {
	// Store wraps and persists key, replacing any earlier key. It may prompt
	// the user to set up device authentication.
	Store(ctx context.Context, key []byte) error

	// Retrieve prompts the user and returns the key. The call blocks for as
	// long as the prompt is shown and honours ctx cancellation.
	Retrieve(ctx context.Context) ([]byte, error)

	// HasStoredKey reports whether a key is present without prompting.
	// Any error is reported as false.
	HasStoredKey(ctx context.Context) bool

	// Purge removes the stored key. It succeeds when nothing is stored.
	Purge(ctx context.Context) error
}

// Backend is the device-local storage slot for one user's wrapped key.
type Backend interface {
	// Put saves item, replacing an existing one.
	Put(ctx context.Context, item WrappedKey) error
	// Get returns the stored item or ErrKeyNotFound.
	Get(ctx context.Context) (WrappedKey, error)
	// Delete removes the item. Deleting a missing item is not an error.
	Delete(ctx context.Context) error
	// Exists reports whether an item is stored.
	Exists(ctx context.Context) (bool, error)
}

// Authenticator verifies the user on this device and releases a device
// unlock secret the master key is wrapped under.
type Authenticator interface {
	// Availability reports whether Authenticate can be used at all.
	Availability(ctx context.Context) Availability
	// Authenticate shows prompt and returns the secret. The caller wipes it.
	Authenticate(ctx context.Context, prompt Prompt) ([]byte, error)
}

// Prompt describes an authentication request.
type Prompt struct {
	// Reason is shown to the user.
	Reason string
	// Enroll asks the user to choose a new secret. Authenticators that
	// accept typed input ask for it twice.
	Enroll bool
}

// WrappedKey is the persisted form of the master key.
type WrappedKey struct {
	// Salt feeds the key-encryption key derivation.
	Salt []byte `json:"salt"`
	// Wrapped is the master key sealed under the key-encryption key.
	Wrapped []byte `json:"wrapped"`
	// CreatedAt is when the key was stored.
	CreatedAt time.Time `json:"created_at"`
}
