package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const vaultBackupRoute = "/api/profile/vault-backup"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}).ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// routes without authorization
		r.Get("/api/version", h.getServerVersion)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.With(h.verifyBodySignature).Put(vaultBackupRoute, h.saveVaultBackup)
			r.Get(vaultBackupRoute, h.getVaultBackup)
			r.Delete(vaultBackupRoute, h.deleteVaultBackup)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
