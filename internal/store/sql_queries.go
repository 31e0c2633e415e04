package store

import (
	"time"

	"github.com/MKhiriev/identra-vault/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	vaultBackupsTable = "vault_backups"
	vaultKeysTable    = "vault_keys"
)

var (
	pgBuilder     = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

// ── postgres: vault_backups ───────────────────────────────────────────────────

func buildUpsertVaultBackupQuery(userID string, backup models.VaultBackup) (string, []any, error) {
	return pgBuilder.
		Insert(vaultBackupsTable).
		Columns("user_id", "vault_backup", "vault_initialized_at", "updated_at").
		Values(userID, backup.VaultBackup, backup.VaultInitializedAt.UTC(), sq.Expr("now()")).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			vault_backup = EXCLUDED.vault_backup,
			vault_initialized_at = EXCLUDED.vault_initialized_at,
			updated_at = now()`).
		ToSql()
}

func buildSelectVaultBackupQuery(userID string) (string, []any, error) {
	return pgBuilder.
		Select("vault_backup", "vault_initialized_at").
		From(vaultBackupsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteVaultBackupQuery(userID string) (string, []any, error) {
	return pgBuilder.
		Delete(vaultBackupsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── sqlite: vault_keys ────────────────────────────────────────────────────────

func buildUpsertVaultKeyQuery(account string, salt, wrapped []byte, createdAt time.Time) (string, []any, error) {
	return sqliteBuilder.
		Insert(vaultKeysTable).
		Columns("account", "salt", "wrapped", "created_at").
		Values(account, salt, wrapped, createdAt.UTC()).
		Suffix(`ON CONFLICT (account) DO UPDATE SET
			salt = excluded.salt,
			wrapped = excluded.wrapped,
			created_at = excluded.created_at`).
		ToSql()
}

func buildSelectVaultKeyQuery(account string) (string, []any, error) {
	return sqliteBuilder.
		Select("salt", "wrapped", "created_at").
		From(vaultKeysTable).
		Where(sq.Eq{"account": account}).
		ToSql()
}

func buildCountVaultKeyQuery(account string) (string, []any, error) {
	return sqliteBuilder.
		Select("COUNT(*)").
		From(vaultKeysTable).
		Where(sq.Eq{"account": account}).
		ToSql()
}

func buildDeleteVaultKeyQuery(account string) (string, []any, error) {
	return sqliteBuilder.
		Delete(vaultKeysTable).
		Where(sq.Eq{"account": account}).
		ToSql()
}
