// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeSignature(h *Handler, body, signature string) (*httptest.ResponseRecorder, string, bool) {
	var seenBody string
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		b, _ := io.ReadAll(r.Body)
		seenBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPut, vaultBackupRoute, strings.NewReader(body))
	req = injectNopLogger(req)
	if signature != "" {
		req.Header.Set(utils.HashHeader, signature)
	}

	rr := httptest.NewRecorder()
	h.verifyBodySignature(next).ServeHTTP(rr, req)
	return rr, seenBody, called
}

func TestVerifyBodySignature_TableTest(t *testing.T) {
	const body = `{"vaultBackup":"abc","vaultInitializedAt":"2026-01-01T00:00:00Z"}`

	tests := []struct {
		name       string
		signature  string
		wantStatus int
		wantNext   bool
	}{
		{name: "valid signature", signature: utils.HashString(body, testHashKey), wantStatus: http.StatusNoContent, wantNext: true},
		{name: "uppercase hex", signature: strings.ToUpper(utils.HashString(body, testHashKey)), wantStatus: http.StatusNoContent, wantNext: true},
		{name: "missing", wantStatus: http.StatusBadRequest},
		{name: "wrong key", signature: utils.HashString(body, "other"), wantStatus: http.StatusBadRequest},
		{name: "not hex", signature: "zzzz", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop(), hasher: utils.NewHasher(testHashKey)}

			rr, seen, called := executeSignature(h, body, tt.signature)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				// тело должно быть восстановлено для следующего обработчика
				assert.Equal(t, body, seen)
			}
		})
	}
}

func TestVerifyBodySignature_DisabledWithoutKey(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	rr, seen, called := executeSignature(h, "payload", "")

	require.True(t, called)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "payload", seen)
}

func TestVerifyBodySignature_BodyTooLarge(t *testing.T) {
	h := &Handler{logger: logger.Nop(), hasher: utils.NewHasher(testHashKey)}
	body := strings.Repeat("a", maxBackupBodySize+1)

	rr, _, called := executeSignature(h, body, utils.HashString(body, testHashKey))

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
