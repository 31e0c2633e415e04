package keystore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringBackend keeps the wrapped key in the OS keychain (macOS Keychain,
// Windows Credential Manager, Secret Service on Linux) under one entry per
// user: service / account. The entry value is base64 of the JSON item.
type KeyringBackend struct {
	service string
	account string
}

// NewKeyringBackend returns a backend for the given keychain service name
// and account (the user id).
func NewKeyringBackend(service, account string) *KeyringBackend {
	return &KeyringBackend{service: service, account: account}
}

// Put implements [Backend].
func (b *KeyringBackend) Put(ctx context.Context, item WrappedKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode keyring item: %w", err)
	}

	if err = keyring.Set(b.service, b.account, base64.StdEncoding.EncodeToString(payload)); err != nil {
		return fmt.Errorf("write keyring item: %w", err)
	}
	return nil
}

// Get implements [Backend].
func (b *KeyringBackend) Get(ctx context.Context) (WrappedKey, error) {
	if err := ctx.Err(); err != nil {
		return WrappedKey{}, err
	}

	value, err := keyring.Get(b.service, b.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return WrappedKey{}, ErrKeyNotFound
		}
		return WrappedKey{}, fmt.Errorf("read keyring item: %w", err)
	}

	payload, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return WrappedKey{}, fmt.Errorf("decode keyring item: %w", err)
	}

	var item WrappedKey
	if err = json.Unmarshal(payload, &item); err != nil {
		return WrappedKey{}, fmt.Errorf("decode keyring item: %w", err)
	}
	return item, nil
}

// Delete implements [Backend].
func (b *KeyringBackend) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := keyring.Delete(b.service, b.account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete keyring item: %w", err)
	}
	return nil
}

// Exists implements [Backend]. Reading a keychain entry does not prompt on
// any supported platform; only the wrapped form is read.
func (b *KeyringBackend) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := keyring.Get(b.service, b.account)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, keyring.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("read keyring item: %w", err)
	}
}
