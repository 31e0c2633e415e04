// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the escrow server that keeps the self-encrypted
// vault backup in the user's profile.
//
// [ProfileAdapter] is what the vault sees as its backup sink. Error values
// defined in errors.go are mapped from HTTP status codes by mapHTTPError so
// that callers can use [errors.Is] (e.g. [ErrNotFound] for 404,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/identra-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/profile_adapter_mock.go -package=mock

// ProfileAdapter reads and writes the vault backup record of the signed-in
// user. The user is identified by the bearer token, never by a parameter.
type ProfileAdapter interface {
	// SaveBackup stores backup, replacing an earlier one.
	SaveBackup(ctx context.Context, backup models.VaultBackup) error

	// GetBackup returns the stored backup. A missing backup is [ErrNotFound].
	GetBackup(ctx context.Context) (models.VaultBackup, error)

	// DeleteBackup removes the backup. Deleting a missing backup succeeds.
	DeleteBackup(ctx context.Context) error
}
