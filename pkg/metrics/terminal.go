package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TerminalMetrics records counters for the staff-facing terminal flows.
type TerminalMetrics struct {
	logins          *prometheus.CounterVec
	basketOps       *prometheus.CounterVec
	ordersEncoded   prometheus.Counter
	catalogFetches  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewTerminalMetrics registers the terminal metrics on the provided registerer.
func NewTerminalMetrics(reg prometheus.Registerer) *TerminalMetrics {
	if reg == nil {
		return &TerminalMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terminal_logins_total",
		Help: "Partner login attempts by outcome.",
	}, []string{"outcome"})
	basketOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terminal_basket_ops_total",
		Help: "Basket mutations by operation.",
	}, []string{"op"})
	ordersEncoded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "terminal_orders_encoded_total",
		Help: "Order payloads encoded into QR codes.",
	})
	catalogFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terminal_catalog_fetches_total",
		Help: "Catalog fetch round-trips by outcome.",
	}, []string{"outcome"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terminal_http_request_duration_seconds",
		Help:    "HTTP request latency by method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
	reg.MustRegister(logins, basketOps, ordersEncoded, catalogFetches, requestDuration)
	return &TerminalMetrics{
		logins:          logins,
		basketOps:       basketOps,
		ordersEncoded:   ordersEncoded,
		catalogFetches:  catalogFetches,
		requestDuration: requestDuration,
	}
}

// IncLogin counts a login attempt with the given outcome.
func (m *TerminalMetrics) IncLogin(outcome string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncBasketOp counts a basket mutation (delta, clear).
func (m *TerminalMetrics) IncBasketOp(op string) {
	if m == nil || m.basketOps == nil {
		return
	}
	m.basketOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncOrderEncoded counts a successfully encoded order payload.
func (m *TerminalMetrics) IncOrderEncoded() {
	if m == nil || m.ordersEncoded == nil {
		return
	}
	m.ordersEncoded.Inc()
}

// IncCatalogFetch counts a catalog round-trip with the given outcome.
func (m *TerminalMetrics) IncCatalogFetch(outcome string) {
	if m == nil || m.catalogFetches == nil {
		return
	}
	m.catalogFetches.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveRequest records one served request.
func (m *TerminalMetrics) ObserveRequest(method, status string, elapsed time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(normalizeLabel(method), normalizeLabel(status)).Observe(elapsed.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
