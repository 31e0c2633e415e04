// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the KEK salt stored with a wrapped key.
const SaltSize = 16

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// KeyChainOption tunes the Argon2id cost of a [KeyChainService].
type KeyChainOption func(*keyChainService)

// WithArgonParams overrides the Argon2id cost parameters. memoryKiB is in
// KiB as in [argon2.IDKey].
func WithArgonParams(time, memoryKiB uint32, threads uint8) KeyChainOption {
	return func(k *keyChainService) {
		k.argonTime = time
		k.argonMemory = memoryKiB
		k.argonThreads = threads
	}
}

// NewKeyChainService constructs a [KeyChainService] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewKeyChainService(opts ...KeyChainOption) KeyChainService {
	k := &keyChainService{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// GenerateEncryptionSalt implements [KeyChainService].
func (k *keyChainService) GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// GenerateKEK implements [KeyChainService].
func (k *keyChainService) GenerateKEK(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, k.argonTime, k.argonMemory, k.argonThreads, KeySize)
}

// WrapKey implements [KeyChainService]. Only 32-byte master keys are
// accepted; the wrapped form is a regular sealed blob under the KEK.
func (k *keyChainService) WrapKey(masterKey, KEK []byte) ([]byte, error) {
	if len(masterKey) != KeySize {
		return nil, ErrInvalidKey
	}
	return Seal(masterKey, KEK)
}

// UnwrapKey implements [KeyChainService]. Unlike Unseal there is no legacy
// passthrough: anything that does not open to a 32-byte key is ErrIntegrity.
func (k *keyChainService) UnwrapKey(wrapped, KEK []byte) ([]byte, error) {
	if len(wrapped) < MinSealedSize {
		return nil, ErrIntegrity
	}

	c, err := NewCipher(KEK)
	if err != nil {
		return nil, err
	}

	// Unseal wipes its input on success; keep the caller's copy intact.
	key, err := c.Unseal(append([]byte(nil), wrapped...))
	if err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		WipeBytes(key)
		return nil, ErrIntegrity
	}

	return key, nil
}
