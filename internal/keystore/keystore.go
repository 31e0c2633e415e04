// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keystore keeps the vault master key on the device behind user
// authentication.
//
// The master key is never written out as is. [WrappedKeyStore] asks an
// [Authenticator] for a device unlock secret, derives a key-encryption key
// from it with Argon2id and stores only the AES-GCM wrapped master key in a
// [Backend]. Backends are device-local: the OS keychain ([KeyringBackend])
// or a private sqlite file (see the store package).
package keystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/identra-vault/internal/crypto"
	"github.com/MKhiriev/identra-vault/internal/logger"
)

const (
	storeReason  = "Choose a device passcode to protect the vault"
	unlockReason = "Unlock the vault"
)

// WrappedKeyStore implements [KeyStore] over a [Backend] and an
// [Authenticator]. Calls are serialized per instance.
type WrappedKeyStore struct {
	mu       sync.Mutex
	backend  Backend
	auth     Authenticator
	keychain crypto.KeyChainService
	logger   *logger.Logger

	now func() time.Time
}

// NewWrappedKeyStore constructs a [WrappedKeyStore].
func NewWrappedKeyStore(backend Backend, auth Authenticator, keychain crypto.KeyChainService, log *logger.Logger) *WrappedKeyStore {
	return &WrappedKeyStore{
		backend:  backend,
		auth:     auth,
		keychain: keychain,
		logger:   log,
		now:      time.Now,
	}
}

// Store implements [KeyStore]. The user is asked to enroll a secret; the
// key is wrapped under a KEK derived from it with a fresh salt.
func (s *WrappedKeyStore) Store(ctx context.Context, key []byte) error {
	if len(key) != crypto.KeySize {
		return crypto.ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	secret, err := s.authenticate(ctx, Prompt{Reason: storeReason, Enroll: true})
	if err != nil {
		return err
	}
	defer crypto.WipeBytes(secret)

	salt, err := s.keychain.GenerateEncryptionSalt()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	kek := s.keychain.GenerateKEK(secret, salt)
	defer crypto.WipeBytes(kek)

	wrapped, err := s.keychain.WrapKey(key, kek)
	if err != nil {
		return fmt.Errorf("%w: wrap key: %w", ErrStorageFailure, err)
	}

	item := WrappedKey{Salt: salt, Wrapped: wrapped, CreatedAt: s.now().UTC()}
	if err = s.backend.Put(ctx, item); err != nil {
		s.logger.Err(err).Str("func", "*WrappedKeyStore.Store").Msg("error saving wrapped key")
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	s.logger.Debug().Str("func", "*WrappedKeyStore.Store").Msg("vault key stored")
	return nil
}

// Retrieve implements [KeyStore]. A missing key is reported before any
// prompt is shown. A wrong secret is ErrAuthenticationFailed.
func (s *WrappedKeyStore) Retrieve(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.backend.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		s.logger.Err(err).Str("func", "*WrappedKeyStore.Retrieve").Msg("error reading wrapped key")
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	secret, err := s.authenticate(ctx, Prompt{Reason: unlockReason})
	if err != nil {
		return nil, err
	}
	defer crypto.WipeBytes(secret)

	kek := s.keychain.GenerateKEK(secret, item.Salt)
	defer crypto.WipeBytes(kek)

	key, err := s.keychain.UnwrapKey(item.Wrapped, kek)
	if err != nil {
		if errors.Is(err, crypto.ErrIntegrity) {
			s.logger.Warn().Str("func", "*WrappedKeyStore.Retrieve").Msg("wrong device secret")
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("%w: unwrap key: %w", ErrStorageFailure, err)
	}

	return key, nil
}

// HasStoredKey implements [KeyStore].
func (s *WrappedKeyStore) HasStoredKey(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.backend.Exists(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "*WrappedKeyStore.HasStoredKey").Msg("presence check failed")
		return false
	}
	return ok
}

// Purge implements [KeyStore].
func (s *WrappedKeyStore) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx); err != nil && !errors.Is(err, ErrKeyNotFound) {
		s.logger.Err(err).Str("func", "*WrappedKeyStore.Purge").Msg("error deleting wrapped key")
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	s.logger.Debug().Str("func", "*WrappedKeyStore.Purge").Msg("vault key purged")
	return nil
}

func (s *WrappedKeyStore) authenticate(ctx context.Context, prompt Prompt) ([]byte, error) {
	if err := RequireAvailable(ctx, s.auth); err != nil {
		return nil, err
	}

	secret, err := s.auth.Authenticate(ctx, prompt)
	if err == nil {
		return secret, nil
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationCancelled, err)
	case errors.Is(err, ErrAuthenticationCancelled),
		errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrBiometricUnavailable):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
}
