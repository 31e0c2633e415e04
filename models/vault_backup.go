package models

import "time"

// VaultBackup is the self-encrypted vault key escrowed in the user's
// profile. VaultBackup holds base64 of the sealed blob; the plaintext inside
// is the base64 of the master key itself, so only the key can open it.
type VaultBackup struct {
	// VaultBackup is std base64 of nonce ‖ ciphertext ‖ tag.
	VaultBackup string `json:"vaultBackup"`
	// VaultInitializedAt is when the vault was set up, in UTC.
	VaultInitializedAt time.Time `json:"vaultInitializedAt"`
}

// IsZero reports whether no backup is present.
func (b VaultBackup) IsZero() bool {
	return b.VaultBackup == "" && b.VaultInitializedAt.IsZero()
}
