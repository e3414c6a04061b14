package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome подписывает результат вызова API в метриках
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeClientError    Outcome = "client_error"
	OutcomeExpiredSession Outcome = "expired_session"
	OutcomeServerError    Outcome = "server_error"
	OutcomeOfflineCache   Outcome = "offline_cache"
	OutcomeOfflineQueued  Outcome = "offline_queued"
	OutcomeOfflineFailed  Outcome = "offline_failed"
)

// SyncResult подписывает исход цикла синхронизации
type SyncResult string

const (
	SyncResultDrained SyncResult = "drained"
	SyncResultAborted SyncResult = "aborted"
	SyncResultSkipped SyncResult = "skipped"
)

// Recorder publishes Prometheus metrics for the offline core.
// Все методы nil-safe: компоненты работают и без подключенных метрик.
type Recorder struct {
	gatherer prometheus.Gatherer
	handler  http.Handler

	apiRequests  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	queuedTotal  prometheus.Counter
	queueDepth   prometheus.Gauge
	syncRuns     *prometheus.CounterVec
	replayed     prometheus.Counter
}

// NewRecorder constructs a Prometheus-backed Recorder. When reg is nil a
// dedicated registry is created so tests can run recorders side by side.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	r := &Recorder{
		gatherer: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roomos",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API calls by method and outcome.",
		}, []string{"method", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roomos",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Offline cache lookups by outcome.",
		}, []string{"outcome"}),
		queuedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roomos",
			Subsystem: "queue",
			Name:      "actions_total",
			Help:      "Actions durably queued for later sync.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roomos",
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Pending actions currently waiting for sync.",
		}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roomos",
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Sync cycles by result.",
		}, []string{"result"}),
		replayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roomos",
			Subsystem: "sync",
			Name:      "actions_replayed_total",
			Help:      "Queued actions successfully replayed.",
		}),
	}

	reg.MustRegister(r.apiRequests, r.cacheLookups, r.queuedTotal, r.queueDepth, r.syncRuns, r.replayed)
	r.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	return r
}

// Handler returns the HTTP handler exposing the registry
func (r *Recorder) Handler() http.Handler {
	return r.handler
}

// Gatherer returns the underlying gatherer (used in tests)
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.gatherer
}

// APIRequest records one API call result
func (r *Recorder) APIRequest(method string, outcome Outcome) {
	if r == nil {
		return
	}
	r.apiRequests.WithLabelValues(method, string(outcome)).Inc()
}

// CacheLookup records a cache hit or miss during offline fallback
func (r *Recorder) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheLookups.WithLabelValues(outcome).Inc()
}

// ActionQueued records a durably queued mutation
func (r *Recorder) ActionQueued() {
	if r == nil {
		return
	}
	r.queuedTotal.Inc()
}

// SetQueueDepth updates the pending queue depth gauge
func (r *Recorder) SetQueueDepth(depth int) {
	if r == nil {
		return
	}
	r.queueDepth.Set(float64(depth))
}

// SyncRun records the result of one sync cycle
func (r *Recorder) SyncRun(result SyncResult) {
	if r == nil {
		return
	}
	r.syncRuns.WithLabelValues(string(result)).Inc()
}

// ActionReplayed records one successfully replayed action
func (r *Recorder) ActionReplayed() {
	if r == nil {
		return
	}
	r.replayed.Inc()
}
