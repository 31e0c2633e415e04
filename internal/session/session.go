// Package session owns the vault of the signed-in user. It is the single
// place that reacts to the "current user changed" signal: switching users
// locks the previous vault before the next one is opened, and signing out
// drops it.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/MKhiriev/identra-vault/internal/keystore"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/vault"
)

var (
	ErrNoSession     = errors.New("no user is signed in")
	ErrInvalidUserID = errors.New("user id is empty")
)

// VaultFactory opens the vault of userID. It must not prompt.
type VaultFactory func(ctx context.Context, userID string) (*vault.Vault, error)

// Manager holds at most one open vault at a time.
type Manager struct {
	mu     sync.Mutex
	userID string
	vault  *vault.Vault

	factory VaultFactory
	auth    keystore.Authenticator
	logger  *logger.Logger
}

func NewManager(factory VaultFactory, auth keystore.Authenticator, log *logger.Logger) *Manager {
	return &Manager{factory: factory, auth: auth, logger: log}
}

// SwitchUser makes userID the current user and returns their vault. Calling
// it again for the current user returns the same vault untouched.
func (m *Manager) SwitchUser(ctx context.Context, userID string) (*vault.Vault, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vault != nil && m.userID == userID {
		return m.vault, nil
	}

	m.closeLocked()

	v, err := m.factory(ctx, userID)
	if err != nil {
		m.logger.Err(err).Str("user_id", userID).Msg("opening vault failed")
		return nil, err
	}

	m.userID, m.vault = userID, v
	m.logger.Info().Str("user_id", userID).Str("status", v.Status().String()).Msg("session switched")
	return v, nil
}

// SignOut locks and forgets the current vault. It is safe to call without
// a session.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.vault == nil {
		return
	}
	m.vault.Lock()
	m.logger.Info().Str("user_id", m.userID).Msg("session closed")
	m.userID, m.vault = "", nil
}

// Current returns the vault of the signed-in user or ErrNoSession.
func (m *Manager) Current() (*vault.Vault, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vault == nil {
		return nil, ErrNoSession
	}
	return m.vault, nil
}

// UserID returns the signed-in user, empty without a session.
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

// WithVault returns ctx carrying the current vault.
func (m *Manager) WithVault(ctx context.Context) (context.Context, error) {
	v, err := m.Current()
	if err != nil {
		return ctx, err
	}
	return vault.NewContext(ctx, v), nil
}

// BiometricsAvailable reports whether device authentication can be used.
// Unlocking is blocked when it reports false.
func (m *Manager) BiometricsAvailable(ctx context.Context) bool {
	return m.auth != nil && m.auth.Availability(ctx) == keystore.AvailabilityReady
}
