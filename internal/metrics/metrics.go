// Package metrics provides Prometheus instrumentation for the provenance API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VerificationsTotal counts verify-and-record calls by outcome.
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provenance_verifications_total",
		Help: "Product verifications recorded, by result",
	}, []string{"result"})

	// StockEntriesTotal counts appended stock entries.
	StockEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "provenance_stock_entries_total",
		Help: "Stock intake events appended to the ledger",
	})

	// StockQuantityTotal accumulates stocked quantity.
	StockQuantityTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "provenance_stock_quantity_total",
		Help: "Cumulative quantity recorded by stock intake events",
	})

	PurchaseUploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "provenance_purchase_uploads_total",
		Help: "Purchase documents uploaded",
	})

	PurchaseUploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "provenance_purchase_upload_bytes",
		Help:    "Size of uploaded purchase documents",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	ReportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "provenance_reports_total",
		Help: "Issue reports submitted",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provenance_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "provenance_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics labelled by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
