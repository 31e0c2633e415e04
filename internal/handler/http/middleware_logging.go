package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/go-chi/chi/v5"
)

// withLogging writes one access log line per request and feeds the request
// counters. Metrics are labelled with the chi route pattern, never the raw
// path.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)
		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.metrics.ObserveRequest(method, route, strconv.Itoa(status), duration.Seconds())

		logger.FromRequest(r).Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}
