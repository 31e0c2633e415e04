package http

import (
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/metrics"
	"github.com/MKhiriev/identra-vault/internal/service"
	"github.com/MKhiriev/identra-vault/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services
	hasher   *utils.Hasher

	registry *prometheus.Registry
	metrics  *metrics.HTTPMetrics

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. hashKey signs request bodies; an empty
// key disables the signature check. Server collectors are registered on a
// private registry served at /metrics.
func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	registry := prometheus.NewRegistry()

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hasher:   utils.NewHasher(hashKey),
		registry: registry,
		metrics:  metrics.NewHTTPMetrics(registry),
		logger:   logger,
	}
}
