// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/sha512"

	"github.com/MKhiriev/identra-vault/internal/mnemonic"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultSalt is the application-wide salt applied on top of the BIP-39
	// seed. Changing it changes every derived key.
	DefaultSalt = "identra-fixed-salt"

	// KeySize is the length of the master key in bytes (AES-256).
	KeySize = 32

	deriveIterations = 100_000
)

// DeriveKey turns a recovery phrase into the 32-byte master key:
//
//	seed = BIP-39 seed of the normalized phrase, empty passphrase (64 bytes)
//	key  = PBKDF2-HMAC-SHA512(seed, salt, 100000 iterations, 32 bytes)
//
// The result is fully determined by the phrase and salt, so the same phrase
// restores the same key on any device. The caller owns the returned slice
// and should wipe it when done.
func DeriveKey(phrase, salt string) ([]byte, error) {
	if !mnemonic.Validate(phrase) {
		return nil, ErrInvalidMnemonic
	}

	seed := seedFor(mnemonic.Normalize(phrase))
	defer WipeBytes(seed)

	return pbkdf2.Key(seed, []byte(salt), deriveIterations, KeySize, sha512.New), nil
}

// DeriveKeyContext runs DeriveKey off the calling goroutine and gives up
// when ctx is done. An abandoned derivation finishes in the background and
// its output is wiped.
func DeriveKeyContext(ctx context.Context, phrase, salt string) ([]byte, error) {
	type result struct {
		key []byte
		err error
	}

	done := make(chan result, 1)
	go func() {
		key, err := DeriveKey(phrase, salt)
		done <- result{key: key, err: err}
	}()

	select {
	case r := <-done:
		return r.key, r.err
	case <-ctx.Done():
		go func() {
			r := <-done
			WipeBytes(r.key)
		}()
		return nil, ctx.Err()
	}
}

func seedFor(normalized string) []byte {
	return bip39.NewSeed(normalized, "")
}
