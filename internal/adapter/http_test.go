// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/utils"
	"github.com/MKhiriev/identra-vault/internal/vault"
	"github.com/MKhiriev/identra-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken   = "test-token"
	testHashKey = "testhashkey"
)

// newTestAdapter создаёт httpProfileAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, serverURL string) ProfileAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}
	appCfg := config.ClientApp{Token: testToken, HashKey: testHashKey}

	a, err := NewHTTPProfileAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a
}

func testBackup() models.VaultBackup {
	return models.VaultBackup{
		VaultBackup:        "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA==",
		VaultInitializedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// ProfileAdapter is what the vault writes its backup through.
var _ vault.BackupSink = (ProfileAdapter)(nil)

// ── NewHTTPProfileAdapter ───────────────────────────────────────────────────

func TestNewHTTPProfileAdapter_Errors(t *testing.T) {
	_, err := NewHTTPProfileAdapter(config.ClientAdapter{}, config.ClientApp{Token: testToken}, logger.Nop())
	assert.Error(t, err)

	_, err = NewHTTPProfileAdapter(config.ClientAdapter{HTTPAddress: "localhost:8080"}, config.ClientApp{Token: " "}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://escrow.example.com/ ", want: "https://escrow.example.com"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── SaveBackup ──────────────────────────────────────────────────────────────

func TestSaveBackup_Success(t *testing.T) {
	backup := testBackup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, vaultBackupPath, r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(traceIDHeader))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		// подпись тела должна совпадать с ключом клиента
		assert.Equal(t, utils.HashString(string(body), testHashKey), r.Header.Get(utils.HashHeader))

		var got models.VaultBackup
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, backup.VaultBackup, got.VaultBackup)
		assert.True(t, backup.VaultInitializedAt.Equal(got.VaultInitializedAt))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.SaveBackup(context.Background(), backup))
}

func TestSaveBackup_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusUnauthorized, want: ErrUnauthorized},
		{status: http.StatusForbidden, want: ErrForbidden},
		{status: http.StatusConflict, want: ErrConflict},
		{status: http.StatusInternalServerError, want: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL).SaveBackup(context.Background(), testBackup())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestSaveBackup_RetriesGateway проверяет, что 503 повторяется клиентом.
func TestSaveBackup_RetriesGateway(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).SaveBackup(context.Background(), testBackup()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSaveBackup_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := newTestAdapter(t, url).SaveBackup(ctx, testBackup())
	assert.Error(t, err)
}

// ── GetBackup ───────────────────────────────────────────────────────────────

func TestGetBackup_Success(t *testing.T) {
	backup := testBackup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, vaultBackupPath, r.URL.Path)
		utils.WriteJSON(w, backup, http.StatusOK)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).GetBackup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backup.VaultBackup, got.VaultBackup)
	assert.True(t, backup.VaultInitializedAt.Equal(got.VaultInitializedAt))
}

func TestGetBackup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).GetBackup(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, got.IsZero())
}

// ── DeleteBackup ────────────────────────────────────────────────────────────

func TestDeleteBackup(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "already gone", status: http.StatusNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL).DeleteBackup(context.Background())
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
