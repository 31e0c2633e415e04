package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/utils"
	"github.com/MKhiriev/identra-vault/models"
	"github.com/go-resty/resty/v2"
)

const (
	vaultBackupPath = "/api/profile/vault-backup"
	traceIDHeader   = "X-Trace-ID"
)

type httpProfileAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher
	token  string

	logger *logger.Logger
}

// NewHTTPProfileAdapter constructs the HTTP implementation of
// [ProfileAdapter]. It normalises the base URL from adapterCfg.HTTPAddress
// and signs request bodies with appCfg.HashKey.
//
// Returns an error if the address is empty or not a valid URL, or if no
// bearer token is configured.
func NewHTTPProfileAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ProfileAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	token := strings.TrimSpace(appCfg.Token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	return &httpProfileAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hasher: utils.NewHasher(appCfg.HashKey),
		token:  token,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SaveBackup implements [ProfileAdapter]. PUT /api/profile/vault-backup.
func (h *httpProfileAdapter) SaveBackup(ctx context.Context, backup models.VaultBackup) error {
	body, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("encode vault backup: %w", err)
	}

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(utils.HashHeader, h.hasher.HashHex(body)).
		SetBody(body).
		Put(vaultBackupPath)
	if err != nil {
		return fmt.Errorf("save vault backup request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetBackup implements [ProfileAdapter]. GET /api/profile/vault-backup.
func (h *httpProfileAdapter) GetBackup(ctx context.Context) (models.VaultBackup, error) {
	var backup models.VaultBackup

	resp, err := h.request(ctx).
		SetResult(&backup).
		Get(vaultBackupPath)
	if err != nil {
		return models.VaultBackup{}, fmt.Errorf("get vault backup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultBackup{}, err
	}

	return backup, nil
}

// DeleteBackup implements [ProfileAdapter]. DELETE /api/profile/vault-backup.
// A 404 counts as success.
func (h *httpProfileAdapter) DeleteBackup(ctx context.Context) error {
	resp, err := h.request(ctx).Delete(vaultBackupPath)
	if err != nil {
		return fmt.Errorf("delete vault backup request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil && resp.StatusCode() != 404 {
		return err
	}
	return nil
}

func (h *httpProfileAdapter) request(ctx context.Context) *resty.Request {
	traceID := utils.NewTraceID()
	h.logger.Debug().Str("trace_id", traceID).Msg("escrow request")

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader(traceIDHeader, traceID)
}
