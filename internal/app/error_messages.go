// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the human-readable messages the vault CLI prints for
// well-known failures.
//
// The Msg* constants are what the user sees; the wrapped error chain goes
// to the log file only. Keeping the wording in one place keeps the CLI
// output consistent across commands.
package app

import (
	"errors"

	"github.com/MKhiriev/identra-vault/internal/adapter"
	"github.com/MKhiriev/identra-vault/internal/vault"
)

const (
	// MsgLocked is shown when an operation needs the vault key but the vault
	// was locked before or while it ran.
	MsgLocked = "the vault is locked"

	// MsgNotInitialized is shown when no vault key exists on this device.
	MsgNotInitialized = "the vault is not set up on this device; run `vault init` or `vault restore`"

	// MsgAlreadyInitialized is shown when setup is attempted twice.
	MsgAlreadyInitialized = "the vault is already set up on this device"

	// MsgInvalidMnemonic is shown when a recovery phrase fails validation.
	MsgInvalidMnemonic = "the recovery phrase is not valid; check the words and their order"

	// MsgIntegrity is shown when data fails authentication: it was
	// tampered with or sealed under another key.
	MsgIntegrity = "the data could not be decrypted: it is damaged or belongs to another vault"

	// MsgAuthenticationFailed is shown after a wrong device passcode.
	MsgAuthenticationFailed = "device authentication failed"

	// MsgAuthenticationCancelled is shown when the prompt was dismissed.
	MsgAuthenticationCancelled = "device authentication was cancelled"

	// MsgBiometricUnavailable is shown when the device cannot authenticate.
	MsgBiometricUnavailable = "device authentication is not available on this machine"

	// MsgTooManyAttempts is shown while unlocking is throttled.
	MsgTooManyAttempts = "too many failed attempts; wait and try again"

	// MsgStorageFailure is shown when the key store cannot be read or written.
	MsgStorageFailure = "the device key store failed"

	// MsgEntropyUnavailable is shown when no secure randomness is available.
	MsgEntropyUnavailable = "secure random numbers are not available; the vault cannot be set up"

	// MsgBackupFailed is shown when setup could not escrow the backup.
	MsgBackupFailed = "the vault backup could not be saved; setup was rolled back"

	// MsgPartialSetup is shown when setup failed and its rollback failed
	// too: the device may still hold a vault key.
	MsgPartialSetup = "the vault backup could not be saved and setup could not be fully undone; run `vault reset` before trying again"

	// MsgBackupMismatch is shown when the escrowed backup was made with
	// another recovery phrase.
	MsgBackupMismatch = "the server backup does not match this vault"

	// MsgBackupNotFound is shown when the profile holds no backup.
	MsgBackupNotFound = "no vault backup is stored in your profile"

	// MsgEscrowUnauthorized is shown when the escrow server rejects the token.
	MsgEscrowUnauthorized = "the backup server rejected your sign-in token"

	// MsgUnexpected is the fallback.
	MsgUnexpected = "unexpected error; see the log file for details"
)

var messages = []struct {
	err error
	msg string
}{
	{vault.ErrLocked, MsgLocked},
	{vault.ErrNotInitialized, MsgNotInitialized},
	{vault.ErrAlreadyInitialized, MsgAlreadyInitialized},
	{vault.ErrInvalidMnemonic, MsgInvalidMnemonic},
	{vault.ErrIntegrity, MsgIntegrity},
	{vault.ErrTooManyAttempts, MsgTooManyAttempts},
	{vault.ErrPartialSetup, MsgPartialSetup},
	{vault.ErrBackupFailed, MsgBackupFailed},
	{vault.ErrBackupMismatch, MsgBackupMismatch},
	{vault.ErrAuthenticationCancelled, MsgAuthenticationCancelled},
	{vault.ErrAuthenticationFailed, MsgAuthenticationFailed},
	{vault.ErrBiometricUnavailable, MsgBiometricUnavailable},
	{vault.ErrEntropyUnavailable, MsgEntropyUnavailable},
	{vault.ErrStorageFailure, MsgStorageFailure},
	{adapter.ErrNotFound, MsgBackupNotFound},
	{adapter.ErrUnauthorized, MsgEscrowUnauthorized},
}

// Message returns the text to show for err. Order matters: ErrBackupFailed
// wraps the transport error, so it is matched before adapter errors.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return MsgUnexpected
}
