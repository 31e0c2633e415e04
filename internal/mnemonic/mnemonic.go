// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mnemonic generates and validates the 12-word BIP-39 recovery
// phrases the vault master key is derived from.
//
// A phrase is a human-transcribable encoding of 128 bits of entropy plus a
// 4-bit SHA-256 checksum, drawn from the English 2048-word list. Phrases are
// never persisted by this package and never logged: [Phrase.String] is
// redacted, the words are only reachable through [Phrase.Reveal].
package mnemonic

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

const (
	// WordCount is the number of words in a recovery phrase.
	WordCount = 12
	// EntropySize is the entropy length in bytes behind a phrase.
	EntropySize = 16
)

// entropySource is swapped in tests to simulate a failing CSPRNG.
var entropySource io.Reader = rand.Reader

// Phrase is a 12-word recovery phrase.
type Phrase string

// String implements fmt.Stringer and never prints the words.
func (p Phrase) String() string {
	return "[redacted recovery phrase]"
}

// Reveal returns the space-separated words for display to the user.
func (p Phrase) Reveal() string {
	return string(p)
}

// Words returns the words of the phrase in order.
func (p Phrase) Words() []string {
	return strings.Fields(string(p))
}

// Generate creates a fresh phrase from 16 bytes of OS CSPRNG entropy.
//
// A random source failure is reported as [ErrEntropyUnavailable]; there is
// no fallback.
func Generate() (Phrase, error) {
	entropy := make([]byte, EntropySize)
	defer memguard.WipeBytes(entropy)

	if _, err := io.ReadFull(entropySource, entropy); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}

	return FromEntropy(entropy)
}

// MustGenerate is like Generate but panics when no entropy is available.
func MustGenerate() Phrase {
	p, err := Generate()
	if err != nil {
		panic(err)
	}
	return p
}

// FromEntropy maps exactly 16 bytes of entropy to its phrase.
func FromEntropy(entropy []byte) (Phrase, error) {
	if len(entropy) != EntropySize {
		return "", ErrInvalidEntropy
	}

	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}

	return Phrase(words), nil
}

// Normalize trims the input, collapses inner whitespace, lowercases it and
// applies Unicode NFKD, which is the form BIP-39 seeds are computed over.
func Normalize(s string) string {
	return norm.NFKD.String(strings.ToLower(strings.Join(strings.Fields(s), " ")))
}

// Validate reports whether candidate is a well-formed 12-word phrase with a
// correct checksum. Surrounding whitespace and letter case are ignored.
// Malformed input yields false, never a panic.
func Validate(candidate string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	normalized := Normalize(candidate)
	if len(strings.Fields(normalized)) != WordCount {
		return false
	}

	return bip39.IsMnemonicValid(normalized)
}
