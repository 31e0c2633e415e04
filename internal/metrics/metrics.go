// Package metrics holds the Prometheus collectors of the vault client and
// the escrow server. Collectors are registered on the registerer passed in,
// so tests can use a fresh prometheus.NewRegistry().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultCancelled = "cancelled"
	ResultLocked    = "locked"
)

// VaultMetrics counts vault state changes and cipher calls. A nil
// *VaultMetrics is valid and records nothing.
type VaultMetrics struct {
	UnlockAttempts *prometheus.CounterVec
	LocksTotal     prometheus.Counter
	CipherOps      *prometheus.CounterVec
	Unlocked       prometheus.Gauge
}

// NewVaultMetrics creates and registers the vault collectors on reg.
func NewVaultMetrics(reg prometheus.Registerer) *VaultMetrics {
	f := promauto.With(reg)
	return &VaultMetrics{
		UnlockAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identra_vault_unlock_attempts_total",
			Help: "Total number of vault unlock attempts by result",
		}, []string{"result"}),
		LocksTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "identra_vault_locks_total",
			Help: "Total number of vault lock calls",
		}),
		CipherOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identra_vault_cipher_operations_total",
			Help: "Total number of seal and unseal calls by operation and result",
		}, []string{"op", "result"}),
		Unlocked: f.NewGauge(prometheus.GaugeOpts{
			Name: "identra_vault_unlocked",
			Help: "1 while the vault holds its key in memory, 0 otherwise",
		}),
	}
}

func (m *VaultMetrics) ObserveUnlock(result string) {
	if m == nil {
		return
	}
	m.UnlockAttempts.WithLabelValues(result).Inc()
}

func (m *VaultMetrics) IncrementLocks() {
	if m == nil {
		return
	}
	m.LocksTotal.Inc()
}

func (m *VaultMetrics) ObserveCipher(op, result string) {
	if m == nil {
		return
	}
	m.CipherOps.WithLabelValues(op, result).Inc()
}

func (m *VaultMetrics) SetUnlocked(unlocked bool) {
	if m == nil {
		return
	}
	if unlocked {
		m.Unlocked.Set(1)
		return
	}
	m.Unlocked.Set(0)
}

// HTTPMetrics holds the escrow server collectors.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	BackupsStored   prometheus.Counter
	BackupsDeleted  prometheus.Counter
}

// NewHTTPMetrics creates and registers the server collectors on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	f := promauto.With(reg)
	return &HTTPMetrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identra_escrow_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "identra_escrow_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BackupsStored: f.NewCounter(prometheus.CounterOpts{
			Name: "identra_escrow_vault_backups_stored_total",
			Help: "Total number of vault backups stored",
		}),
		BackupsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "identra_escrow_vault_backups_deleted_total",
			Help: "Total number of vault backups deleted",
		}),
	}
}

func (m *HTTPMetrics) ObserveRequest(method, route, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, code).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *HTTPMetrics) IncrementBackupsStored() {
	if m == nil {
		return
	}
	m.BackupsStored.Inc()
}

func (m *HTTPMetrics) IncrementBackupsDeleted() {
	if m == nil {
		return
	}
	m.BackupsDeleted.Inc()
}
