package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	filesUploadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "files_uploaded_total",
		Help: "Total files stored.",
	})
	filesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "files_deleted_total",
		Help: "Total files hard-deleted.",
	})
	filesServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "files_served_total",
		Help: "Total file payloads served, by disposition.",
	}, []string{"disposition"})
	uploadSizeBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "files_upload_size_bytes",
		Help:    "Size of stored file payloads in bytes.",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})
)

// ObserveUpload records a stored file of the given size.
func ObserveUpload(sizeBytes int64) {
	if sizeBytes < 0 {
		sizeBytes = 0
	}
	filesUploadedTotal.Inc()
	uploadSizeBytes.Observe(float64(sizeBytes))
}

// IncDeleted increments the deleted counter.
func IncDeleted() {
	filesDeletedTotal.Inc()
}

// IncServed increments the served counter for "attachment" or "inline".
func IncServed(disposition string) {
	filesServedTotal.WithLabelValues(disposition).Inc()
}

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
