package session

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/identra-vault/internal/keystore"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/mock"
	"github.com/MKhiriev/identra-vault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// lockedFactory opens vaults over mocked key stores that already hold a key
// and records which users were opened.
func lockedFactory(ctrl *gomock.Controller, opened *[]string) VaultFactory {
	return func(ctx context.Context, userID string) (*vault.Vault, error) {
		*opened = append(*opened, userID)
		ks := mock.NewMockKeyStore(ctrl)
		ks.EXPECT().HasStoredKey(gomock.Any()).Return(true)
		return vault.New(ctx, ks, logger.Nop(), vault.Options{}), nil
	}
}

func TestManager_SwitchUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	var opened []string
	m := NewManager(lockedFactory(ctrl, &opened), nil, logger.Nop())
	ctx := context.Background()

	_, err := m.Current()
	assert.ErrorIs(t, err, ErrNoSession)

	a, err := m.SwitchUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", m.UserID())

	same, err := m.SwitchUser(ctx, " alice ")
	require.NoError(t, err)
	assert.Same(t, a, same, "same user keeps the open vault")

	b, err := m.SwitchUser(ctx, "bob")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, "bob", m.UserID())
	assert.Equal(t, []string{"alice", "bob"}, opened)

	cur, err := m.Current()
	require.NoError(t, err)
	assert.Same(t, b, cur)
}

func TestManager_SwitchUserLocksPreviousVault(t *testing.T) {
	ctrl := gomock.NewController(t)

	ks := mock.NewMockKeyStore(ctrl)
	ks.EXPECT().HasStoredKey(gomock.Any()).Return(true)
	ks.EXPECT().Retrieve(gomock.Any()).Return(make([]byte, 32), nil)
	first := vault.New(context.Background(), ks, logger.Nop(), vault.Options{})
	require.NoError(t, first.Unlock(context.Background()))

	var opened []string
	next := lockedFactory(ctrl, &opened)
	calls := 0
	m := NewManager(func(ctx context.Context, userID string) (*vault.Vault, error) {
		calls++
		if calls == 1 {
			return first, nil
		}
		return next(ctx, userID)
	}, nil, logger.Nop())

	_, err := m.SwitchUser(context.Background(), "alice")
	require.NoError(t, err)
	_, err = m.SwitchUser(context.Background(), "bob")
	require.NoError(t, err)

	assert.Equal(t, vault.Locked, first.Status())
	_, err = first.SealString(context.Background(), "x")
	assert.ErrorIs(t, err, vault.ErrLocked)
}

func TestManager_SwitchUserErrors(t *testing.T) {
	boom := errors.New("keyring unavailable")
	m := NewManager(func(context.Context, string) (*vault.Vault, error) { return nil, boom }, nil, logger.Nop())

	_, err := m.SwitchUser(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = m.SwitchUser(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_SignOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	var opened []string
	m := NewManager(lockedFactory(ctrl, &opened), nil, logger.Nop())

	m.SignOut() // no session yet

	_, err := m.SwitchUser(context.Background(), "alice")
	require.NoError(t, err)

	m.SignOut()
	assert.Empty(t, m.UserID())
	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.WithVault(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_WithVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	var opened []string
	m := NewManager(lockedFactory(ctrl, &opened), nil, logger.Nop())

	v, err := m.SwitchUser(context.Background(), "alice")
	require.NoError(t, err)

	ctx, err := m.WithVault(context.Background())
	require.NoError(t, err)
	got, ok := vault.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, v, got)
}

func TestManager_BiometricsAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	tests := []struct {
		availability keystore.Availability
		want         bool
	}{
		{availability: keystore.AvailabilityReady, want: true},
		{availability: keystore.AvailabilityNoHardware, want: false},
		{availability: keystore.AvailabilityNotEnrolled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.availability.String(), func(t *testing.T) {
			auth := mock.NewMockAuthenticator(ctrl)
			auth.EXPECT().Availability(ctx).Return(tt.availability)

			m := NewManager(nil, auth, logger.Nop())
			assert.Equal(t, tt.want, m.BiometricsAvailable(ctx))
		})
	}

	assert.False(t, NewManager(nil, nil, logger.Nop()).BiometricsAvailable(ctx))
}
