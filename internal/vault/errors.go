package vault

import (
	"errors"

	"github.com/MKhiriev/identra-vault/internal/crypto"
	"github.com/MKhiriev/identra-vault/internal/keystore"
	"github.com/MKhiriev/identra-vault/internal/mnemonic"
)

var (
	// ErrLocked is returned by every cipher call while the vault does not
	// hold its key, including calls that started before a Lock.
	ErrLocked = errors.New("vault is locked: unlock required")

	// ErrNotInitialized is returned by Unlock before a key was set up.
	ErrNotInitialized = errors.New("vault is not initialized")

	// ErrAlreadyInitialized is returned by Initialize once a key exists.
	// Reset the vault first to set it up with another phrase.
	ErrAlreadyInitialized = errors.New("vault is already initialized")

	// ErrTooManyAttempts is returned by Unlock after repeated failed
	// authentications until the retry interval passes.
	ErrTooManyAttempts = errors.New("too many unlock attempts")

	// ErrBackupFailed is returned when the backup record could not be
	// handed over or removed.
	ErrBackupFailed = errors.New("vault backup failed")

	// ErrPartialSetup is returned with ErrBackupFailed when Initialize could
	// not remove the key it had stored. The key store may still hold it.
	ErrPartialSetup = errors.New("vault setup rolled back incompletely: a key may remain in the key store")

	// ErrBackupMismatch is returned by VerifyBackup when the record opens
	// but does not hold this vault's key.
	ErrBackupMismatch = errors.New("vault backup does not match the vault key")
)

// Errors of the lower layers, re-exported so callers of the vault match
// against one package.
var (
	ErrInvalidMnemonic         = crypto.ErrInvalidMnemonic
	ErrIntegrity               = crypto.ErrIntegrity
	ErrEntropyUnavailable      = mnemonic.ErrEntropyUnavailable
	ErrBiometricUnavailable    = keystore.ErrBiometricUnavailable
	ErrAuthenticationFailed    = keystore.ErrAuthenticationFailed
	ErrAuthenticationCancelled = keystore.ErrAuthenticationCancelled
	ErrStorageFailure          = keystore.ErrStorageFailure
)
