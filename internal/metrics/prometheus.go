// Package metrics provides Prometheus metrics for the permission mapping services
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "permmap"

// HTTP metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"service", "method", "path"},
	)

	httpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
		[]string{"service"},
	)
)

// Translation metrics
var (
	// TranslationsTotal counts translation calls by direction (to_frontend, to_backend)
	TranslationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "Total number of permission set translations",
		},
		[]string{"direction"},
	)

	// TranslatedIdentifiersTotal counts identifiers received for translation
	TranslatedIdentifiersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translated_identifiers_total",
			Help:      "Total number of identifiers submitted for translation",
		},
		[]string{"direction"},
	)

	// UnmappedIdentifiersTotal counts identifiers dropped because the table has no entry
	UnmappedIdentifiersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmapped_identifiers_total",
			Help:      "Total number of identifiers dropped for lack of a mapping",
		},
		[]string{"direction"},
	)

	// MappingTableEntries reports the size of the loaded mapping table
	MappingTableEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mapping_table_entries",
			Help:      "Number of backend permissions in the loaded mapping table",
		},
	)
)

// Middleware records request count, latency and in-flight requests
func Middleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		if path == "/metrics" {
			c.Next()
			return
		}

		httpRequestsInFlight.WithLabelValues(serviceName).Inc()
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(serviceName, method, path, status).Inc()
		httpRequestDuration.WithLabelValues(serviceName, method, path).Observe(time.Since(start).Seconds())
		httpRequestsInFlight.WithLabelValues(serviceName).Dec()
	}
}

// Handler serves the Prometheus metrics endpoint
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordTranslation records one translation call and the number of identifiers it received
func RecordTranslation(direction string, inputs int) {
	TranslationsTotal.WithLabelValues(direction).Inc()
	TranslatedIdentifiersTotal.WithLabelValues(direction).Add(float64(inputs))
}

// RecordUnmapped records one dropped identifier
func RecordUnmapped(direction string) {
	UnmappedIdentifiersTotal.WithLabelValues(direction).Inc()
}

// SetMappingTableEntries publishes the loaded table size
func SetMappingTableEntries(n int) {
	MappingTableEntries.Set(float64(n))
}
