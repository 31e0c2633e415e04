package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService оборачивает мастер-ключ хранилища ключом устройства.
// Он не знает ничего о том, где лежит обёрнутый ключ и как пользователь
// подтверждает свою личность.
//
// Схема работы:
//
//	Salt    = GenerateEncryptionSalt()             (Шаг 1)
//	KEK     = GenerateKEK(deviceSecret, Salt)      (Шаг 2)
//	Wrapped = WrapKey(masterKey, KEK)              (Шаг 3)
//	Key     = UnwrapKey(Wrapped, KEK)              (обратно)
type KeyChainService interface {
	// GenerateEncryptionSalt returns 16 random bytes. The salt is not a
	// secret and is stored next to the wrapped key.
	GenerateEncryptionSalt() ([]byte, error)

	// GenerateKEK derives a 256-bit key-encryption key from the device
	// unlock secret and salt via Argon2id. The KEK lives only in memory.
	GenerateKEK(secret, salt []byte) []byte

	// WrapKey seals the master key under the KEK: nonce ‖ ciphertext ‖ tag.
	WrapKey(masterKey, KEK []byte) ([]byte, error)

	// UnwrapKey opens a blob produced by WrapKey. A wrong KEK (wrong device
	// secret) or a damaged blob yields ErrIntegrity.
	UnwrapKey(wrapped, KEK []byte) ([]byte, error)
}
