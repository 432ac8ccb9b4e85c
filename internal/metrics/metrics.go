// Package metrics exposes Prometheus collectors for HTTP traffic and invoice
// activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facturas",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "facturas",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route"},
	)

	invoicesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "facturas",
		Name:      "invoices_created_total",
		Help:      "Invoices stored together with their items.",
	})

	invoicesDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "facturas",
		Name:      "invoices_deleted_total",
		Help:      "Invoices deleted together with their items.",
	})

	clientsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "facturas",
		Name:      "clients_created_total",
		Help:      "Registered clients.",
	})

	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facturas",
			Name:      "validation_failures_total",
			Help:      "Rejected submissions by form.",
		},
		[]string{"form"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		invoicesCreated,
		invoicesDeleted,
		clientsCreated,
		validationFailures,
		prometheus.NewGoCollector(),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func InvoiceCreated() { invoicesCreated.Inc() }

func InvoiceDeleted() { invoicesDeleted.Inc() }

func ClientCreated() { clientsCreated.Inc() }

// ValidationFailed counts a rejected submission of the named form.
func ValidationFailed(form string) { validationFailures.WithLabelValues(form).Inc() }

// Instrument records count and latency of every request. The route label is
// the matched ServeMux pattern so ids do not explode the label set.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}
