// Package metrics exports upload telemetry to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer captures telemetry for object store writes.
type Observer interface {
	RecordUpload(duration time.Duration, sizeBytes int64, err error)
}

// PrometheusObserver exports upload metrics to Prometheus.
type PrometheusObserver struct {
	uploadDuration prometheus.Histogram
	uploadErrors   prometheus.Counter
	uploadBytes    prometheus.Counter
}

// NewPrometheusObserver registers the upload collectors on reg. Collectors
// that are already registered are reused.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "imageplatform"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PrometheusObserver{
		uploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Latency of object store writes.",
			Buckets:   prometheus.DefBuckets,
		}),
		uploadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_errors_total",
			Help:      "Count of failed object store writes.",
		}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_bytes_total",
			Help:      "Cumulative size of images written to object storage.",
		}),
	}

	var err error
	if o.uploadDuration, err = register(reg, o.uploadDuration); err != nil {
		return nil, err
	}
	if o.uploadErrors, err = register(reg, o.uploadErrors); err != nil {
		return nil, err
	}
	if o.uploadBytes, err = register(reg, o.uploadBytes); err != nil {
		return nil, err
	}
	return o, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register upload metric: %w", err)
	}
	return c, nil
}

// RecordUpload tracks write duration, size, and failures.
func (o *PrometheusObserver) RecordUpload(duration time.Duration, sizeBytes int64, err error) {
	if o == nil {
		return
	}
	o.uploadDuration.Observe(duration.Seconds())
	if err != nil {
		o.uploadErrors.Inc()
		return
	}
	o.uploadBytes.Add(float64(sizeBytes))
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordUpload(time.Duration, int64, error) {}
