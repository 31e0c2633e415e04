// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/identra-vault/models"
	"github.com/stretchr/testify/require"
)

func Test_buildUpsertVaultBackupQuery(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	query, args, err := buildUpsertVaultBackupQuery("user-1", models.VaultBackup{
		VaultBackup:        "c2VhbGVk",
		VaultInitializedAt: at,
	})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into vault_backups")
	require.Contains(t, q, "on conflict (user_id) do update")
	require.Contains(t, q, "now()")

	// placeholder format should be $N (Postgres)
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$3")
	require.NotContains(t, query, "?")

	// now() is inlined, not bound
	require.Len(t, args, 3)
	require.Equal(t, "user-1", args[0])
	require.Equal(t, "c2VhbGVk", args[1])
	require.Equal(t, at.UTC(), args[2])
}

func Test_buildSelectVaultBackupQuery(t *testing.T) {
	query, args, err := buildSelectVaultBackupQuery("user-1")
	require.NoError(t, err)

	require.Equal(t, "SELECT vault_backup, vault_initialized_at FROM vault_backups WHERE user_id = $1", query)
	require.Equal(t, []any{"user-1"}, args)
}

func Test_buildDeleteVaultBackupQuery(t *testing.T) {
	query, args, err := buildDeleteVaultBackupQuery("user-1")
	require.NoError(t, err)

	require.Equal(t, "DELETE FROM vault_backups WHERE user_id = $1", query)
	require.Equal(t, []any{"user-1"}, args)
}

func Test_buildVaultKeyQueries_UseQuestionPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (string, []any, error)
		contains string
		args     int
	}{
		{
			name: "upsert",
			build: func() (string, []any, error) {
				return buildUpsertVaultKeyQuery("acc", []byte("s"), []byte("w"), time.Now())
			},
			contains: "insert into vault_keys",
			args:     4,
		},
		{name: "select", build: func() (string, []any, error) { return buildSelectVaultKeyQuery("acc") }, contains: "from vault_keys", args: 1},
		{name: "count", build: func() (string, []any, error) { return buildCountVaultKeyQuery("acc") }, contains: "count(*)", args: 1},
		{name: "delete", build: func() (string, []any, error) { return buildDeleteVaultKeyQuery("acc") }, contains: "delete from vault_keys", args: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			require.NoError(t, err)

			require.Contains(t, strings.ToLower(query), tt.contains)
			require.Contains(t, query, "?")
			require.NotContains(t, query, "$1")
			require.Len(t, args, tt.args)
			require.Equal(t, "acc", args[0])
		})
	}
}
